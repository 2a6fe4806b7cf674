package service

// User-facing messages carried by validation errors.
const (
	msgCredentialsRequired = "Usuario y contraseña requeridos"
	msgSlideFieldsRequired = "Se requiere título e imagen"
)
