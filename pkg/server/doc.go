// Package server exposes an entity graph over HTTP and WebSocket.
//
// Routes:
//
//	GET  /healthz                      liveness
//	GET  /api/{kind}/{id}              raw attributes of an entity
//	GET  /api/{kind}/{id}/{field}      current value of a field
//	PUT  /api/rooms/{id}               update length, width or height
//	PUT  /api/windows/{id}             update width or height
//	POST /api/houses|rooms|windows     create an entity
//	GET  /ws/{kind}/{id}/{field}       stream of field values
//	GET  /metrics                      Prometheus metrics, if configured
//
// {kind} is one of houses, rooms or windows. Values are sent as
// {"value": ...}; a field that fails sends {"error": {...}} and the stream
// is closed. Values JSON cannot represent, such as the NaN share of a room
// in an empty house, are sent as null.
package server
