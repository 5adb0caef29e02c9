package main

import (
	"encoding/json"
	"mime"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/msg"
	"github.com/xy-planning-network/switchback/http/resolver"
	"github.com/xy-planning-network/switchback/http/router"
	"github.com/xy-planning-network/switchback/logger"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// newRouter builds the demonstration app.
func newRouter(cfg switchback.Config, ls logger.Logger, reg prometheus.Registerer, tp trace.TracerProvider) *router.Router {
	store := newUserStore()
	handlers := resolver.NewRegistry()
	handlers.Register("users", func() any { return &usersController{store: store} })

	factory := msg.Factory{Header: http.Header{"X-Powered-By": {"switchback"}}}

	rt := router.New(
		router.WithBasePath(cfg.BasePath),
		router.WithLogger(ls),
		router.WithResolver(handlers),
		router.WithResponseFactory(factory),
	)

	var visitors *middleware.Visitors
	if cfg.RateLimit > 0 {
		visitors = middleware.NewVisitors(rate.Limit(cfg.RateLimit), cfg.Burst)
	}

	rt.AddMiddleware(
		middleware.ReportPanic(cfg.Env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(ls),
		middleware.RenderErrors(factory, ls),
		middleware.RateLimit(visitors),
		rt.RoutingMiddleware(),
		middleware.Prometheus(middleware.WithRegistry(reg)),
		middleware.Tracing(middleware.WithTracerProvider(tp)),
	)

	rt.Get("/", index(rt)).SetName("index")
	rt.Get("/health", health).SetStrategy(router.RequestStrategy{}).SetName("health")
	rt.Get("/blog[/{slug}]", router.VariadicFunc(blog)).
		SetStrategy(router.RequestResponseArgsStrategy{}).
		SetName("blog")

	rt.Group("/api/users", func(c *router.Collector) {
		c.Get("", "users:Index").SetName("users.index")
		c.Post("", "users:Create").SetName("users.create")
		c.Get("/{id:[0-9]+}", "users:Show").SetName("users.show")
	}).AddMiddleware(requireJSON)

	return rt
}

// index lists the URLs of the app's named routes.
func index(rt *router.Router) middleware.HandlerFunc {
	return func(r *http.Request) (*msg.Response, error) {
		links := make(map[string]string)
		for _, route := range rt.Routes() {
			if route.Name() == "" || route.Name() == "index" {
				continue
			}

			u, err := rt.URLFor(route.Name(), map[string]string{"id": "1", "slug": "hello world"}, nil)
			if err != nil {
				return nil, err
			}
			links[route.Name()] = u
		}

		res := msg.NewResponse(http.StatusOK)
		if err := res.JSON(links); err != nil {
			return nil, err
		}

		return res, nil
	}
}

func health(r *http.Request) (*msg.Response, error) {
	res := msg.NewResponse(http.StatusOK)
	if err := res.JSON(map[string]string{"status": "ok"}); err != nil {
		return nil, err
	}

	return res, nil
}

func blog(r *http.Request, res *msg.Response, args ...string) (*msg.Response, error) {
	if len(args) == 0 {
		res.WriteString("all posts")
		return res, nil
	}

	res.WriteString("post: " + args[0])
	return res, nil
}

// requireJSON rejects requests with a body that is not JSON.
var requireJSON = middleware.Func(func(r *http.Request, next middleware.Handler) (*msg.Response, error) {
	if r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodPatch {
		return next.Handle(r)
	}

	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mt != "application/json" {
		res := msg.NewResponse(http.StatusUnsupportedMediaType)
		res.WriteString("expected application/json")
		return res, nil
	}

	return next.Handle(r)
})

type user struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type userStore struct {
	mu    sync.RWMutex
	users map[int]user
	next  int
}

func newUserStore() *userStore {
	return &userStore{
		users: map[int]user{1: {ID: 1, Name: "Ada"}, 2: {ID: 2, Name: "Grace"}},
		next:  3,
	}
}

func (s *userStore) all() []user {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]user, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

func (s *userStore) find(id int) (user, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	return u, ok
}

func (s *userStore) add(name string) user {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := user{ID: s.next, Name: name}
	s.users[u.ID] = u
	s.next++

	return u
}

// usersController is resolved anew for every request.
type usersController struct {
	store *userStore
}

func (uc *usersController) Index(r *http.Request, res *msg.Response, args map[string]string) (*msg.Response, error) {
	return res, res.JSON(uc.store.all())
}

func (uc *usersController) Show(r *http.Request, res *msg.Response, args map[string]string) (*msg.Response, error) {
	id, err := strconv.Atoi(args["id"])
	if err != nil {
		return nil, &switchback.NotFoundError{Request: r}
	}

	u, ok := uc.store.find(id)
	if !ok {
		return nil, &switchback.NotFoundError{Request: r}
	}

	return res, res.JSON(u)
}

func (uc *usersController) Create(r *http.Request, res *msg.Response, args map[string]string) (*msg.Response, error) {
	var body struct {
		Name string `json:"name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Name) == "" {
		res = res.WithStatus(http.StatusUnprocessableEntity)
		res.WriteString("name is required")
		return res, nil
	}

	u := uc.store.add(strings.TrimSpace(body.Name))
	res = res.WithStatus(http.StatusCreated)

	return res, res.JSON(u)
}
