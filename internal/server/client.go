package server

import (
	"net/http"
	"time"

	"github.com/MRGRAVITY817/dungeon-crawler/internal/engine"
	"github.com/MRGRAVITY817/dungeon-crawler/internal/network"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/api"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/logger"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/utils"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 64 * 1024, // Снимок карты 80x50 - десятки килобайт
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и Service
type Client struct {
	Service   *engine.Service
	Conn      *websocket.Conn
	Send      chan api.ServerResponse
	SessionID string

	sub  *network.Subscription
	done chan struct{} // Закрывается, когда writePump завершился
}

func NewClient(service *engine.Service, conn *websocket.Conn) *Client {
	return &Client{
		Service: service,
		Conn:    conn,
		Send:    make(chan api.ServerResponse, 16),
		done:    make(chan struct{}),
	}
}

// send кладет сообщение в очередь записи, если writePump еще жив
func (c *Client) send(msg api.ServerResponse) bool {
	select {
	case c.Send <- msg:
		return true
	case <-c.done:
		return false
	}
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		// Unregister закрывает канал подписки, пересылка закрывает Send, writePump выходит
		c.Service.Hub.Unregister(c.sub)
		if c.sub == nil {
			// Подписки не было: закрываем Send сами и ждем, пока writePump допишет очередь
			close(c.Send)
			<-c.done
		}
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection")
		}
		logger.Log.WithField("session", c.SessionID).Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// 1. HANDSHAKE: первое сообщение выбирает сессию
	var hello api.ClientCommand
	if err := c.Conn.ReadJSON(&hello); err != nil {
		logger.Log.WithError(err).Warn("Handshake failed")
		return
	}
	if err := hello.ValidateToken(); err != nil {
		logger.Log.WithError(err).Warn("Handshake rejected")
		c.send(*engine.ErrorView("", err))
		return
	}

	c.SessionID = hello.Token
	if c.SessionID == "" {
		c.SessionID = utils.GenerateID()
	}
	sess := c.Service.OpenSession(c.SessionID)

	// 2. ПОДПИСКА НА СНИМКИ СЕССИИ
	c.sub = c.Service.Hub.Register(c.SessionID)
	go func(sub *network.Subscription) {
		for msg := range sub.C {
			c.send(msg)
		}
		close(c.Send)
	}(c.sub)

	logger.Log.WithFields(logrus.Fields{
		"session": c.SessionID,
		"remote":  c.Conn.RemoteAddr().String(),
	}).Info("Client connected")

	// Текущий уровень - только этому зрителю
	if !c.send(*engine.BuildView(sess.Current())) {
		return
	}

	// 3. ЦИКЛ ЧТЕНИЯ КОМАНД
	for {
		var cmd api.ClientCommand
		err := c.Conn.ReadJSON(&cmd)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Log.WithError(err).Error("WS Error")
			}
			break
		}

		view, err := c.Service.ProcessCommand(c.SessionID, cmd)
		if err != nil {
			logger.Log.WithFields(logrus.Fields{
				"session": c.SessionID,
				"action":  cmd.Action,
			}).WithError(err).Warn("Command rejected")
			c.send(*engine.ErrorView(c.SessionID, err))
			continue
		}

		// RESET и DESCEND уже разосланы через Hub, в том числе этому клиенту
		if cmd.Action == api.ActionInit {
			c.send(*view)
		}
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(c.done)
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
