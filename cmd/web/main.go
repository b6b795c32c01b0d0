package main

import "findartisan_backend/internal/app"

func main() {
	app.Run()
}
