package config

// setWeatherDefaults installs default values for the weather lookup client.
func setWeatherDefaults() {
	setDefault("weather.api_url", "https://api.open-meteo.com/v1/forecast")
	setDefault("weather.timeout", "10s")
	setDefault("weather.breaker_failures", "3")
	setDefault("weather.breaker_cooldown", "30s")
}
