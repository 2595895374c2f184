package database

import (
	"slidis/pubsub"
)

func init() {
	RegisterPubSubCommand("SUBSCRIBE", pubsub.Subscribe, flagWrite)
	RegisterPubSubCommand("UNSUBSCRIBE", pubsub.UnSubscribe, flagWrite)
	RegisterPubSubCommand("PUBLISH", pubsub.Publish, flagWrite)
}
