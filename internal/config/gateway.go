package config

import (
    "strings"
    "time"
)

// GatewayConfig configures cmd/gateway, the edge proxy in front of the API.
type GatewayConfig struct {
    Port       string        // port the gateway listens on
    BackendURL string        // base URL of the API server, without trailing slash
    Timeout    time.Duration // upstream request timeout
    LogLevel   string
    LogFormat  string
}

func LoadGatewayConfig() GatewayConfig {
    return GatewayConfig{
        Port:       envStr("GATEWAY_PORT", "3000"),
        BackendURL: strings.TrimRight(envStr("BACKEND_URL", "http://localhost:5000"), "/"),
        Timeout:    envDur("GATEWAY_TIMEOUT", 10*time.Second),
        LogLevel:   envStr("LOG_LEVEL", "info"),
        LogFormat:  envStr("LOG_FORMAT", "json"),
    }
}
