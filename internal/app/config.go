package app

import (
	"github.com/bayanihan-ph/relief-backend/internal/pkg/logger"
	"github.com/bayanihan-ph/relief-backend/internal/utils"
)

type Config struct {
	Addr       string
	QRFontPath string
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	fontPath := utils.GetEnv("QR_FONT_PATH", "", log)
	return Config{
		Addr:       ":" + port,
		QRFontPath: fontPath,
	}
}
