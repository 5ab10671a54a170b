package main

import "accountd/internal/app"

// @title           accountd API
// @version         1.0
// @description     Сервис аккаунтов: регистрация с подтверждением по почте, вход, список пользователей.
// @BasePath        /
func main() {
	app.Run()
}
