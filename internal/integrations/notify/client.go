package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

const defaultSubject = "Workshop Sidekick Notification"

// snsAPI is the minimal SNS interface required by Client.
type snsAPI interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Client publishes workshop notifications over SNS. It is used only by the
// messaging surface, never by the analytics path.
type Client struct {
	api snsAPI
}

func New(api snsAPI) (*Client, error) {
	if api == nil {
		return nil, errors.New("notify: api must not be nil")
	}
	return &Client{api: api}, nil
}

// PublishTopic sends a message to an SNS topic and returns the message id.
func (c *Client) PublishTopic(ctx context.Context, topicARN, message string) (string, error) {
	if strings.TrimSpace(topicARN) == "" {
		return "", errors.New("notify: topic arn is required")
	}
	if strings.TrimSpace(message) == "" {
		return "", errors.New("notify: message is required")
	}

	out, err := c.api.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(topicARN),
		Message:  aws.String(message),
		Subject:  aws.String(defaultSubject),
	})
	if err != nil {
		return "", fmt.Errorf("notify: publish to topic: %w", err)
	}
	if out == nil || out.MessageId == nil {
		return "", errors.New("notify: publish returned no message id")
	}
	return *out.MessageId, nil
}

// PublishDirect sends a message to individual recipients, skipping the ones
// that fail. The returned slice holds one message id per delivered message.
func (c *Client) PublishDirect(ctx context.Context, recipients []string, message string) ([]string, error) {
	if len(recipients) == 0 {
		return nil, errors.New("notify: at least one recipient is required")
	}
	if strings.TrimSpace(message) == "" {
		return nil, errors.New("notify: message is required")
	}

	var ids []string
	for _, r := range recipients {
		out, err := c.api.Publish(ctx, &sns.PublishInput{
			PhoneNumber: aws.String(r),
			Message:     aws.String(message),
		})
		if err != nil || out == nil || out.MessageId == nil {
			continue
		}
		ids = append(ids, *out.MessageId)
	}
	return ids, nil
}
