// Package http serves a read-only JSON view of a locator.
//
// # Response
//
// Response wraps http.ResponseWriter with envelope helpers.
//
//	res := gohttp.NewResponse(w)
//
//	res.JSON(200, data)           // raw JSON with status
//	res.Success(data)             // 200 {"data": ...}
//	res.Error(400, "bad input")   // {"message": "bad input"}
//	res.NotFound()                // 404 {"message": "Not found."}
//	res.ServerError()             // 500 {"message": "Server Error."}
//
// # LocatorHandler
//
//	h := gohttp.NewLocatorHandler(l, logger)
//	h.Routes(router)
//
//	GET /healthz                 {"data":{"status":"ok","locator":"<id>"}}
//	GET /locator                 registered identifiers
//	GET /locator/{id}            {"data":{"id","registered","has"}} or 404
//	GET /locator/{id}/recipe     the recipe or 404
//	GET /locator/{id}/instance   {"data":{"id","type"}}; 404 unknown, 500 on failure
package http
