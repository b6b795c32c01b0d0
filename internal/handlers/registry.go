package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler    *AuthHandler
	ArtisanHandler *ArtisanHandler
	FileHandler    *FileHandler
}
