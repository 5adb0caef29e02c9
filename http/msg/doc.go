/*
Package msg defines the response side of an HTTP exchange handled by a switchback router.

Requests are plain [*net/http.Request] values.
A [*Response] is built by a [ResponseFactory], passed to handlers,
and emitted onto an [net/http.ResponseWriter] once the middleware chain completes.
Its body is a [*Stream], an in-memory byte stream that can be read, rewound, and written.
*/
package msg
