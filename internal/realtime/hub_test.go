package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"handypro/internal/domain"
	"handypro/internal/mocks"
)

func newTestClient(role domain.MessageSender) *Client {
	return &Client{
		UserID: uuid.New(),
		Role:   role,
		send:   make(chan []byte, sendBufferSize),
	}
}

func receiveEvent(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case raw := <-c.send:
		var event Event
		require.NoError(t, json.Unmarshal(raw, &event))
		return event
	default:
		t.Fatal("expected an event on the send channel")
		return Event{}
	}
}

func assertNoEvent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case raw := <-c.send:
		t.Fatalf("unexpected event: %s", raw)
	default:
	}
}

func joinFrame(conversationID uuid.UUID) []byte {
	return []byte(fmt.Sprintf(`{"event":"joinConversation","data":{"conversationId":%q}}`, conversationID))
}

func sendFrame(conversationID uuid.UUID, sender domain.MessageSender, content string) []byte {
	return []byte(fmt.Sprintf(`{"event":"sendMessage","data":{"conversationId":%q,"sender":%q,"content":%q}}`, conversationID, sender, content))
}

func readFrame(conversationID uuid.UUID, role domain.MessageSender) []byte {
	return []byte(fmt.Sprintf(`{"event":"messagesRead","data":{"conversationId":%q,"role":%q}}`, conversationID, role))
}

func joinedClient(t *testing.T, hub *Hub, msgSvc *mocks.MessagingService, conv *domain.Conversation, userID uuid.UUID, role domain.MessageSender) *Client {
	t.Helper()
	c := newTestClient(role)
	c.UserID = userID
	msgSvc.On("GetConversation", mock.Anything, conv.ID).Return(conv, nil).Once()
	hub.HandleEvent(context.Background(), c, joinFrame(conv.ID))
	assertNoEvent(t, c)
	return c
}

func TestHubJoin(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	providerID := uuid.New()
	conv := &domain.Conversation{ID: uuid.New(), UserID: userID, ProviderID: providerID}

	t.Run("participant joins the room", func(t *testing.T) {
		msgSvc := new(mocks.MessagingService)
		hub := NewHub(msgSvc)
		c := newTestClient(domain.SenderUser)
		c.UserID = userID

		msgSvc.On("GetConversation", mock.Anything, conv.ID).Return(conv, nil).Once()

		hub.HandleEvent(ctx, c, joinFrame(conv.ID))

		assertNoEvent(t, c)
		assert.True(t, hub.isJoined(c, conv.ID))
	})

	t.Run("non-participant is refused", func(t *testing.T) {
		msgSvc := new(mocks.MessagingService)
		hub := NewHub(msgSvc)
		c := newTestClient(domain.SenderUser)

		msgSvc.On("GetConversation", mock.Anything, conv.ID).Return(conv, nil).Once()

		hub.HandleEvent(ctx, c, joinFrame(conv.ID))

		event := receiveEvent(t, c)
		assert.Equal(t, EventMessageError, event.Event)
		assert.False(t, hub.isJoined(c, conv.ID))
	})

	t.Run("joining a second room leaves the first", func(t *testing.T) {
		msgSvc := new(mocks.MessagingService)
		hub := NewHub(msgSvc)
		other := &domain.Conversation{ID: uuid.New(), UserID: userID, ProviderID: uuid.New()}

		c := joinedClient(t, hub, msgSvc, conv, userID, domain.SenderUser)

		msgSvc.On("GetConversation", mock.Anything, other.ID).Return(other, nil).Once()
		hub.HandleEvent(ctx, c, joinFrame(other.ID))

		assert.False(t, hub.isJoined(c, conv.ID))
		assert.True(t, hub.isJoined(c, other.ID))
	})

	t.Run("malformed join payload", func(t *testing.T) {
		msgSvc := new(mocks.MessagingService)
		hub := NewHub(msgSvc)
		c := newTestClient(domain.SenderUser)

		hub.HandleEvent(ctx, c, []byte(`{"event":"joinConversation","data":{}}`))

		event := receiveEvent(t, c)
		assert.Equal(t, EventMessageError, event.Event)
	})
}

func TestHubSendMessage(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	providerID := uuid.New()
	conv := &domain.Conversation{ID: uuid.New(), UserID: userID, ProviderID: providerID}

	t.Run("persisted message reaches every connection in the room", func(t *testing.T) {
		msgSvc := new(mocks.MessagingService)
		hub := NewHub(msgSvc)

		sender := joinedClient(t, hub, msgSvc, conv, userID, domain.SenderUser)
		counterpart := joinedClient(t, hub, msgSvc, conv, providerID, domain.SenderProvider)
		secondDevice := joinedClient(t, hub, msgSvc, conv, userID, domain.SenderUser)

		stored := &domain.Message{
			ID:             uuid.New(),
			ConversationID: conv.ID,
			Sender:         domain.SenderUser,
			Content:        "hello",
		}
		msgSvc.On("Send", mock.Anything, conv.ID, domain.SenderUser, "hello").Return(stored, nil).Once()

		hub.HandleEvent(ctx, sender, sendFrame(conv.ID, domain.SenderUser, "hello"))

		for _, c := range []*Client{sender, counterpart, secondDevice} {
			event := receiveEvent(t, c)
			assert.Equal(t, EventNewMessage, event.Event)

			var message domain.Message
			require.NoError(t, json.Unmarshal(event.Data, &message))
			assert.Equal(t, stored.ID, message.ID)
		}
		msgSvc.AssertExpectations(t)
	})

	t.Run("persist failure errors the sender only", func(t *testing.T) {
		msgSvc := new(mocks.MessagingService)
		hub := NewHub(msgSvc)

		sender := joinedClient(t, hub, msgSvc, conv, userID, domain.SenderUser)
		counterpart := joinedClient(t, hub, msgSvc, conv, providerID, domain.SenderProvider)

		msgSvc.On("Send", mock.Anything, conv.ID, domain.SenderUser, "hello").Return(nil, errors.New("db down")).Once()

		hub.HandleEvent(ctx, sender, sendFrame(conv.ID, domain.SenderUser, "hello"))

		event := receiveEvent(t, sender)
		assert.Equal(t, EventMessageError, event.Event)
		assertNoEvent(t, counterpart)
	})

	t.Run("must join before sending", func(t *testing.T) {
		msgSvc := new(mocks.MessagingService)
		hub := NewHub(msgSvc)
		c := newTestClient(domain.SenderUser)
		c.UserID = userID

		hub.HandleEvent(ctx, c, sendFrame(conv.ID, domain.SenderUser, "hello"))

		event := receiveEvent(t, c)
		assert.Equal(t, EventMessageError, event.Event)
		msgSvc.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("sender field must match the connection role", func(t *testing.T) {
		msgSvc := new(mocks.MessagingService)
		hub := NewHub(msgSvc)

		sender := joinedClient(t, hub, msgSvc, conv, userID, domain.SenderUser)

		hub.HandleEvent(ctx, sender, sendFrame(conv.ID, domain.SenderProvider, "hello"))

		event := receiveEvent(t, sender)
		assert.Equal(t, EventMessageError, event.Event)
		msgSvc.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("other rooms never see the message", func(t *testing.T) {
		msgSvc := new(mocks.MessagingService)
		hub := NewHub(msgSvc)
		otherConv := &domain.Conversation{ID: uuid.New(), UserID: uuid.New(), ProviderID: providerID}

		sender := joinedClient(t, hub, msgSvc, conv, userID, domain.SenderUser)
		bystander := joinedClient(t, hub, msgSvc, otherConv, otherConv.UserID, domain.SenderUser)

		stored := &domain.Message{ID: uuid.New(), ConversationID: conv.ID, Sender: domain.SenderUser, Content: "hi"}
		msgSvc.On("Send", mock.Anything, conv.ID, domain.SenderUser, "hi").Return(stored, nil).Once()

		hub.HandleEvent(ctx, sender, sendFrame(conv.ID, domain.SenderUser, "hi"))

		receiveEvent(t, sender)
		assertNoEvent(t, bystander)
	})
}

func TestHubMessagesRead(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	providerID := uuid.New()
	conv := &domain.Conversation{ID: uuid.New(), UserID: userID, ProviderID: providerID}

	t.Run("read state is persisted then broadcast", func(t *testing.T) {
		msgSvc := new(mocks.MessagingService)
		hub := NewHub(msgSvc)

		reader := joinedClient(t, hub, msgSvc, conv, userID, domain.SenderUser)
		counterpart := joinedClient(t, hub, msgSvc, conv, providerID, domain.SenderProvider)

		msgSvc.On("MarkRead", mock.Anything, conv.ID, domain.SenderUser).Return(nil).Once()

		hub.HandleEvent(ctx, reader, readFrame(conv.ID, domain.SenderUser))

		for _, c := range []*Client{reader, counterpart} {
			event := receiveEvent(t, c)
			assert.Equal(t, EventMessagesRead, event.Event)
		}
		msgSvc.AssertExpectations(t)
	})

	t.Run("mark read failure stays with the reader", func(t *testing.T) {
		msgSvc := new(mocks.MessagingService)
		hub := NewHub(msgSvc)

		reader := joinedClient(t, hub, msgSvc, conv, userID, domain.SenderUser)
		counterpart := joinedClient(t, hub, msgSvc, conv, providerID, domain.SenderProvider)

		msgSvc.On("MarkRead", mock.Anything, conv.ID, domain.SenderUser).Return(errors.New("db down")).Once()

		hub.HandleEvent(ctx, reader, readFrame(conv.ID, domain.SenderUser))

		event := receiveEvent(t, reader)
		assert.Equal(t, EventMessageError, event.Event)
		assertNoEvent(t, counterpart)
	})
}

func TestHubUnregister(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	providerID := uuid.New()
	conv := &domain.Conversation{ID: uuid.New(), UserID: userID, ProviderID: providerID}

	msgSvc := new(mocks.MessagingService)
	hub := NewHub(msgSvc)

	sender := joinedClient(t, hub, msgSvc, conv, userID, domain.SenderUser)
	counterpart := joinedClient(t, hub, msgSvc, conv, providerID, domain.SenderProvider)

	hub.Unregister(counterpart)

	_, open := <-counterpart.send
	assert.False(t, open)

	stored := &domain.Message{ID: uuid.New(), ConversationID: conv.ID, Sender: domain.SenderUser, Content: "still here"}
	msgSvc.On("Send", mock.Anything, conv.ID, domain.SenderUser, "still here").Return(stored, nil).Once()

	hub.HandleEvent(ctx, sender, sendFrame(conv.ID, domain.SenderUser, "still here"))

	event := receiveEvent(t, sender)
	assert.Equal(t, EventNewMessage, event.Event)

	t.Run("unknown event name", func(t *testing.T) {
		hub.HandleEvent(ctx, sender, []byte(`{"event":"typing","data":{}}`))
		event := receiveEvent(t, sender)
		assert.Equal(t, EventMessageError, event.Event)
	})
}
