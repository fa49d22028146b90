package dto

// Message é um turno da conversa entre usuário e agente.
type Message struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}

// ChatRequest carrega a conversa completa; o servidor é stateless em relação
// ao histórico.
type ChatRequest struct {
	Messages []Message `json:"messages"`
}
