package main

// General API documentation for swaggo. Run `swag init -g cmd/chatd/docs.go -o docs` to regenerate docs.
//
// @title           chatd API
// @version         0.1.0
// @description     Streaming chat completions over a locally loaded llama.cpp model.
//
// @contact.name   chatd maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
