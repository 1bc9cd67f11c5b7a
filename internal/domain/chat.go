package domain

import "time"

// SentinelTitle es el titulo placeholder asignado al crear un chat;
// se reemplaza una sola vez con el titulo derivado del primer mensaje.
const SentinelTitle = "New Chat"

// DefaultChatTitle se usa cuando el caller crea un chat sin titulo explicito.
const DefaultChatTitle = "Japanese Learning Chat"

type Chat struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}
