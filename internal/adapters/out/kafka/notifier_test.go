package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/outbox"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	last []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.last = append([]kafka.Message{}, msgs...)
	return w.err
}

func TestNotifier_Publish(t *testing.T) {
	fw := &fakeWriter{}
	n := NewNotifierWithWriter(fw)

	msg, err := outbox.NewMessage(kernel.NewUUID(), outbox.NotificationTopic, "LX123", []byte(`{"status":"boxed"}`), time.Now())
	require.NoError(t, err)

	require.NoError(t, n.Publish(context.Background(), msg))

	require.Len(t, fw.last, 1)
	assert.Equal(t, outbox.NotificationTopic, fw.last[0].Topic)
	assert.Equal(t, []byte("LX123"), fw.last[0].Key)
	assert.Equal(t, []byte(`{"status":"boxed"}`), fw.last[0].Value)
}

func TestNotifier_Publish_WriterError(t *testing.T) {
	wantErr := errors.New("broker down")
	fw := &fakeWriter{err: wantErr}
	n := NewNotifierWithWriter(fw)

	msg, err := outbox.NewMessage(kernel.NewUUID(), outbox.NotificationTopic, "LX123", []byte(`{}`), time.Now())
	require.NoError(t, err)

	err = n.Publish(context.Background(), msg)
	require.ErrorIs(t, err, wantErr)
}
