// Package config loads configuration structs from environment variables.
//
// Fields are described with github.com/caarlos0/env tags; a .env file in the
// working directory, if present, is loaded through github.com/joho/godotenv
// before the first parse. Every package of the service declares its own Config
// struct and the entry point embeds them into one root struct.
package config
