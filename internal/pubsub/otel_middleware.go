package pubsub

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const payloadPreviewLen = 100

// tracingPublisher records a producer span for every message it publishes.
// Spans end once the wrapped publisher returns, which with
// BlockPublishUntilSubscriberAck covers delivery to every subscriber.
type tracingPublisher struct {
	next   message.Publisher
	tracer trace.Tracer
}

func newTracingPublisher(next message.Publisher, tracer trace.Tracer) *tracingPublisher {
	return &tracingPublisher{next: next, tracer: tracer}
}

func (p *tracingPublisher) Publish(topic string, messages ...*message.Message) error {
	spans := make([]trace.Span, len(messages))
	for i, msg := range messages {
		ctx, span := p.tracer.Start(msg.Context(), "pubsub.publish."+topic,
			trace.WithSpanKind(trace.SpanKindProducer),
			trace.WithAttributes(publishAttributes(topic, msg)...),
		)
		msg.SetContext(ctx)
		spans[i] = span
	}

	err := p.next.Publish(topic, messages...)
	for _, span := range spans {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
	return err
}

func (p *tracingPublisher) Close() error {
	return p.next.Close()
}

func publishAttributes(topic string, msg *message.Message) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("messaging.system", "watermill"),
		attribute.String("messaging.operation", "publish"),
		attribute.String("messaging.destination", topic),
		attribute.String("messaging.message_id", msg.UUID),
		attribute.String("ws.client_id", msg.Metadata.Get(metaKeyClientID)),
		attribute.Int("messaging.message_payload_size_bytes", len(msg.Payload)),
		attribute.String("messaging.message_payload_preview", preview(msg.Payload)),
	}
}

// preview returns at most payloadPreviewLen bytes of payload.
func preview(payload []byte) string {
	if len(payload) <= payloadPreviewLen {
		return string(payload)
	}
	return string(payload[:payloadPreviewLen]) + "..."
}
