package main

import "github.com/Juan-Devgo/Clothes/internal/app"

// @title           Clothes Saldos Americanos API
// @version         1.0
// @description     Backend de la aplicación de gestión de clientes, cuentas y ventas.
// @BasePath        /
func main() {
	app.Run()
}
