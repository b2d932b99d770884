// Package main provides the entry point for wirehttp-server.
//
// wirehttp-server is a self-contained HTTP/1.1 service built directly on
// TCP: it frames requests from the socket, dispatches them through a
// declarative route table, and serves the user, data and static-file
// endpoints configured in routes.yaml.
package main
