// Package server exposes the image mode converter as an MCP (Model Context
// Protocol) tool server.
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests, one per line
//   - Output: JSON-RPC responses, one per line
//
// Supported MCP methods: initialize, tools/list, tools/call and ping.
//
// # Available Tools
//
//   - image_convert: convert a file to a pixel mode and write the result
//   - image_info: dimensions, format and mode of a file
//   - image_modes: supported modes and the formats that can store them
//
// # Error Handling
//
// Tool failures, including the converter's DecodeError, UnsupportedModeError
// and EncodeError, are returned as JSON-RPC errors with code -32000 and the
// error text in data. A malformed line gets a -32700 response with a null id.
//
// # Usage
//
//	srv := server.New(version, logger)
//	if err := srv.Run(os.Stdin, os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
package server
