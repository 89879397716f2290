package handlers

import (
	"log"
	"sync"

	"wallbot-backend/models"

	"github.com/gofiber/websocket/v2"
)

// Client - 연결된 웹 클라이언트
type Client struct {
	Conn *websocket.Conn
}

// ClientManager - 실시간 피드 클라이언트 관리자
type ClientManager struct {
	clients    map[*websocket.Conn]*Client
	broadcast  chan models.WebSocketMessage
	register   chan *Client
	unregister chan *websocket.Conn
	mutex      sync.RWMutex
}

// 전역 클라이언트 관리자
var Manager = &ClientManager{
	clients:    make(map[*websocket.Conn]*Client),
	broadcast:  make(chan models.WebSocketMessage, 100),
	register:   make(chan *Client),
	unregister: make(chan *websocket.Conn),
}

// Start - 클라이언트 관리 루프 시작
func (manager *ClientManager) Start() {
	for {
		select {
		case client := <-manager.register:
			manager.mutex.Lock()
			manager.clients[client.Conn] = client
			manager.mutex.Unlock()
			log.Printf("클라이언트 등록: %s", client.Conn.RemoteAddr())

		case conn := <-manager.unregister:
			manager.mutex.Lock()
			if _, ok := manager.clients[conn]; ok {
				delete(manager.clients, conn)
				_ = conn.Close()
				log.Printf("클라이언트 해제: %s", conn.RemoteAddr())
			}
			manager.mutex.Unlock()

		case message := <-manager.broadcast:
			manager.handleBroadcast(message)
		}
	}
}

func (manager *ClientManager) handleBroadcast(message models.WebSocketMessage) {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()

	for conn := range manager.clients {
		if err := conn.WriteJSON(message); err != nil {
			log.Printf("⚠️ 전송 실패: %v", err)
		}
	}
}

// BroadcastMessage - 모든 웹 클라이언트로 메시지 브로드캐스트
func (manager *ClientManager) BroadcastMessage(msg models.WebSocketMessage) {
	select {
	case manager.broadcast <- msg:
	default:
		log.Println("⚠️ broadcast 채널 가득 참")
	}
}

// GetClientCount - 연결된 클라이언트 수 반환
func (manager *ClientManager) GetClientCount() int {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()
	return len(manager.clients)
}
