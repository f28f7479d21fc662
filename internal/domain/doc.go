package domain

// Package domain contains the core business concepts for the conversion
// service. Keep this package free of transport (HTTP) and infrastructure
// (storage, MuPDF) concerns.
