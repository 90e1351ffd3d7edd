// Package docs holds the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "description": "Database, Redis and alert queue status. Disabled components report UNKNOWN.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "All enabled components are up",
                        "schema": {"$ref": "#/definitions/model.HealthResponse"}
                    },
                    "503": {
                        "description": "At least one component is down",
                        "schema": {"$ref": "#/definitions/model.HealthResponse"}
                    }
                }
            }
        },
        "/weather/alerts": {
            "get": {
                "description": "Threshold alerts over live data. When nothing fires a single entry with id 0 is returned.",
                "produces": ["application/json"],
                "tags": ["weather"],
                "summary": "Get weather alerts",
                "responses": {
                    "200": {
                        "description": "Alerts",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/model.AlertDTO"}}
                    },
                    "502": {
                        "description": "Weather provider unavailable",
                        "schema": {"$ref": "#/definitions/model.ErrorResponse"}
                    }
                }
            }
        },
        "/weather/current": {
            "get": {
                "description": "Live weather of every tracked city, keyed by city. Cities without data are omitted.",
                "produces": ["application/json"],
                "tags": ["weather"],
                "summary": "Get current weather",
                "responses": {
                    "200": {
                        "description": "Current weather by city",
                        "schema": {"type": "object", "additionalProperties": {"$ref": "#/definitions/model.CurrentWeatherDTO"}}
                    },
                    "502": {
                        "description": "Weather provider unavailable",
                        "schema": {"$ref": "#/definitions/model.ErrorResponse"}
                    }
                }
            }
        },
        "/weather/forecast/{city}": {
            "get": {
                "description": "Five day / three hour forecast of a city, date and time in UTC",
                "produces": ["application/json"],
                "tags": ["weather"],
                "summary": "Get forecast",
                "parameters": [
                    {"type": "string", "description": "City name", "name": "city", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "Forecast steps",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/model.ForecastDTO"}}
                    },
                    "502": {
                        "description": "Weather provider unavailable",
                        "schema": {"$ref": "#/definitions/model.ErrorResponse"}
                    }
                }
            }
        },
        "/weather/historical": {
            "get": {
                "description": "Every stored daily summary",
                "produces": ["application/json"],
                "tags": ["weather"],
                "summary": "Get historical weather",
                "responses": {
                    "200": {
                        "description": "Daily summaries",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/model.DailySummaryDTO"}}
                    },
                    "500": {
                        "description": "Summary store unavailable",
                        "schema": {"$ref": "#/definitions/model.ErrorResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "model.AlertDTO": {
            "type": "object",
            "properties": {
                "city": {"type": "string", "example": "Delhi"},
                "id": {"type": "integer", "example": 1},
                "message": {"type": "string", "example": "Temperature exceeded 35°C in Delhi. Current: 36.0°C"}
            }
        },
        "model.ComponentHealthStatus": {
            "type": "object",
            "properties": {
                "details": {"type": "object", "additionalProperties": {"type": "string"}},
                "status": {"$ref": "#/definitions/model.HealthStatus"}
            }
        },
        "model.CurrentWeatherDTO": {
            "type": "object",
            "properties": {
                "avg_temp": {"type": "number", "example": 31.2},
                "dominant_weather": {"type": "string", "example": "haze"},
                "humidity": {"type": "number", "example": 62},
                "max_temp": {"type": "number", "example": 32},
                "min_temp": {"type": "number", "example": 30.1},
                "wind_speed": {"type": "number", "example": 4.1}
            }
        },
        "model.DailySummaryDTO": {
            "type": "object",
            "properties": {
                "avg_temp": {"type": "number"},
                "city": {"type": "string", "example": "Delhi"},
                "date": {"type": "string", "example": "2024-05-01"},
                "dominant_weather": {"type": "string"},
                "humidity": {"type": "number"},
                "max_temp": {"type": "number"},
                "min_temp": {"type": "number"},
                "wind_speed": {"type": "number"}
            }
        },
        "model.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "weather provider unavailable"}
            }
        },
        "model.ForecastDTO": {
            "type": "object",
            "properties": {
                "avg_temp": {"type": "number"},
                "city": {"type": "string", "example": "Delhi"},
                "date": {"type": "string", "example": "2024-05-01"},
                "dominant_weather": {"type": "string"},
                "humidity": {"type": "number"},
                "max_temp": {"type": "number"},
                "min_temp": {"type": "number"},
                "time": {"type": "string", "example": "15:00:00"},
                "wind_speed": {"type": "number"}
            }
        },
        "model.HealthResponse": {
            "type": "object",
            "properties": {
                "database": {"$ref": "#/definitions/model.ComponentHealthStatus"},
                "queue": {"$ref": "#/definitions/model.ComponentHealthStatus"},
                "redis": {"$ref": "#/definitions/model.ComponentHealthStatus"},
                "status": {"$ref": "#/definitions/model.HealthStatus"}
            }
        },
        "model.HealthStatus": {
            "type": "string",
            "enum": ["UP", "DOWN", "UNKNOWN"]
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "weather-api",
	Description:      "Polls OpenWeather for the tracked cities, stores daily summaries and serves current, historical, alert and forecast data.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
