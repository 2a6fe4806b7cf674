package handler

const (
	msgCredentialsRequired = "Usuario y contraseña requeridos"
	msgInvalidPayload      = "Solicitud inválida"
	msgLogoutOK            = "Logout exitoso"
	msgSlideCreated        = "Slide agregado correctamente"
	msgSlideFieldsRequired = "Se requiere título e imagen"
)
