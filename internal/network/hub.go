package network

import (
	"sync"

	"github.com/MRGRAVITY817/dungeon-crawler/pkg/api"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Subscription - канал одного зрителя сессии
type Subscription struct {
	ID        uint64
	SessionID string
	C         <-chan api.ServerResponse

	ch chan api.ServerResponse
}

// Broadcaster занимается только рассылкой снимков уровней зрителям.
// У одной сессии может быть несколько зрителей.
type Broadcaster struct {
	mu     sync.RWMutex
	nextID uint64
	// Мапа: SessionID -> (SubscriptionID -> канал)
	subscribers map[string]map[uint64]chan api.ServerResponse
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]map[uint64]chan api.ServerResponse),
	}
}

// Register создает личный канал зрителя для сессии
func (b *Broadcaster) Register(sessionID string) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	ch := make(chan api.ServerResponse, 16)

	viewers, ok := b.subscribers[sessionID]
	if !ok {
		viewers = make(map[uint64]chan api.ServerResponse)
		b.subscribers[sessionID] = viewers
	}
	viewers[b.nextID] = ch

	return &Subscription{ID: b.nextID, SessionID: sessionID, C: ch, ch: ch}
}

// Unregister удаляет зрителя и закрывает его канал. Повторный вызов безопасен.
func (b *Broadcaster) Unregister(sub *Subscription) {
	if sub == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	viewers, ok := b.subscribers[sub.SessionID]
	if !ok {
		return
	}
	if ch, ok := viewers[sub.ID]; ok {
		close(ch)
		delete(viewers, sub.ID)
	}
	if len(viewers) == 0 {
		delete(b.subscribers, sub.SessionID)
	}
}

// Publish отправляет сообщение всем зрителям сессии.
// Медленный зритель пропускает снимок, а не тормозит генерацию.
func (b *Broadcaster) Publish(sessionID string, msg api.ServerResponse) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	delivered := 0
	for id, ch := range b.subscribers[sessionID] {
		select {
		case ch <- msg:
			delivered++
		default:
			logger.Log.WithFields(logrus.Fields{
				"component":    "hub",
				"session":      sessionID,
				"subscription": id,
			}).Warn("Viewer channel full, snapshot dropped")
		}
	}
	return delivered
}

// HasSubscriber проверяет, смотрит ли кто-нибудь сессию
func (b *Broadcaster) HasSubscriber(sessionID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[sessionID]) > 0
}

// SubscriberCount возвращает количество активных зрителей во всех сессиях.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for _, viewers := range b.subscribers {
		n += len(viewers)
	}
	return n
}
