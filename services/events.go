package services

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	aws_pkg "github.com/iammarkzubarkusa-prog/wing-way-connect/pkg/aws"
)

// eventPublisher marshals domain events and publishes them to SNS.
// Publishing is best-effort: a missing client or topic, or a publish
// failure, is logged and never fails the calling operation.
type eventPublisher struct {
	sns      aws_pkg.SNSPublisher
	topicArn string
	logger   *zap.Logger
}

func (p *eventPublisher) publish(ctx context.Context, event interface{}) {
	if p.sns == nil || p.topicArn == "" {
		return
	}
	b, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal event", zap.Error(err))
		return
	}
	if err := p.sns.Publish(ctx, p.topicArn, b); err != nil {
		p.logger.Error("Failed to publish event", zap.Error(err))
		return
	}
	p.logger.Info("Published event", zap.String("topic", p.topicArn))
}
