package container

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/shortener-go/internal/events"
	"go.uber.org/zap"
)

const eventConsumerGroup = "shortener-events"

// PublisherGroupPackage provides the event publisher: a Redis Streams
// publisher when configured, otherwise the in-process channel pub/sub.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*gochannel.GoChannel, error) {
		return gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: 64,
		}, watermill.NopLogger{}), nil
	})

	do.Provide(injector, func(i *do.Injector) (*events.PublisherGroup, error) {
		opts := do.MustInvoke[*Options](i)

		if opts.RedisEvents {
			client := do.MustInvoke[*redis.Client](i)

			publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
				Client: client,
			}, watermill.NopLogger{})
			if err != nil {
				return nil, err
			}

			return events.NewPublisherGroup(publisher), nil
		}

		return events.NewPublisherGroup(do.MustInvoke[*gochannel.GoChannel](i)), nil
	})
}

// ConsumerGroupPackage provides the consumer group draining operational
// events into the structured log sink.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*events.ConsumerGroup, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		if opts.RedisEvents {
			client := do.MustInvoke[*redis.Client](i)

			subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
				Client:        client,
				ConsumerGroup: eventConsumerGroup,
			}, watermill.NopLogger{})
			if err != nil {
				return nil, err
			}

			return events.NewLogSinkGroup(subscriber, logger), nil
		}

		return events.NewLogSinkGroup(do.MustInvoke[*gochannel.GoChannel](i), logger), nil
	})
}
