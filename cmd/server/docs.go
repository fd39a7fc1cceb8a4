package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           Supply Chain Negotiator API
// @version         0.1.0
// @description     Practice supply-chain negotiations against an AI seller with automated scoring.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
