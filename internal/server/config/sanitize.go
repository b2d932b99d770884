package config

// Sanitize returns a copy of the configuration safe for logging. Secrets
// are masked, not removed, so their presence is still visible.
func Sanitize(cfg *ServerConfig) *ServerConfig {
	out := *cfg
	out.Auth.SigningKey = maskSecret(cfg.Auth.SigningKey)
	return &out
}

func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "****"
}
