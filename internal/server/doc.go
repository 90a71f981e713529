// Package server provides HTTP routing, middleware, and the local preview page for generated sleeves.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Preview
//
// [PreviewHandler] renders an index page for an output directory and serves the sleeve images in it.
// Only the known output filenames are served, so the preview never exposes other files in the directory.
// [Serve] runs a router until its context is cancelled.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
