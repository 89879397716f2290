package handlers

import (
	"log"
	"time"

	"wallbot-backend/models"

	"github.com/gofiber/websocket/v2"
)

// HandleWebClientWebSocket - 웹 클라이언트 실시간 피드 핸들러
// 실행 세션 상태 변경을 수신 전용으로 중계한다
func HandleWebClientWebSocket(c *websocket.Conn) {
	client := &Client{Conn: c}

	Manager.register <- client

	defer func() {
		Manager.unregister <- c
	}()

	// 연결 확인 메시지 전송
	welcomeMsg := models.WebSocketMessage{
		Type: models.WSTypeSystemInfo,
		Data: map[string]interface{}{
			"message":      "웹 클라이언트 연결됨",
			"connected_at": time.Now().Format(time.RFC3339),
		},
		Timestamp: time.Now().UnixMilli(),
	}
	_ = c.WriteJSON(welcomeMsg)

	// 수신 전용 피드: 읽기 루프는 연결 종료 감지 용도
	for {
		var msg models.WebSocketMessage
		if err := c.ReadJSON(&msg); err != nil {
			log.Printf("웹 메시지 읽기 오류: %v", err)
			break
		}
		log.Printf("무시된 클라이언트 메시지: %s", msg.Type)
	}
}
