package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the community counters exposed on /metrics
type Metrics struct {
	ReadersCounted       *prometheus.CounterVec
	ReaderRepeats        prometheus.Counter
	CommentsCreated      prometheus.Counter
	RepliesCreated       prometheus.Counter
	CommentsDeleted      *prometheus.CounterVec
	ReactionsToggled     *prometheus.CounterVec
	RatingsSubmitted     prometheus.Counter
	AchievementsUnlocked *prometheus.CounterVec
	SubscriptionsTotal   *prometheus.CounterVec
	TermsAccepted        *prometheus.CounterVec
	TransactionRetries   prometheus.Counter
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// Default returns the process-wide metrics instance
func Default() *Metrics {
	once.Do(func() {
		defaultMetrics = New(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}

// New creates all collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ReadersCounted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "community_readers_counted_total",
				Help: "Distinct readers counted, by reader kind",
			},
			[]string{"kind"},
		),
		ReaderRepeats: factory.NewCounter(prometheus.CounterOpts{
			Name: "community_reader_repeats_total",
			Help: "Reader count requests for readers already counted",
		}),
		CommentsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "community_comments_created_total",
			Help: "Comments created",
		}),
		RepliesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "community_replies_created_total",
			Help: "Replies created",
		}),
		CommentsDeleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "community_posts_deleted_total",
				Help: "Comments and replies deleted, by actor",
			},
			[]string{"actor"},
		),
		ReactionsToggled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "community_reactions_toggled_total",
				Help: "Reaction toggles, by resulting reaction",
			},
			[]string{"result"},
		),
		RatingsSubmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "community_ratings_submitted_total",
			Help: "Ratings submitted or changed",
		}),
		AchievementsUnlocked: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "community_achievements_unlocked_total",
				Help: "Achievements unlocked, by milestone",
			},
			[]string{"id"},
		),
		SubscriptionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "community_subscriptions_total",
				Help: "Notification subscriptions, by channel",
			},
			[]string{"channel"},
		),
		TermsAccepted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "community_terms_accepted_total",
				Help: "Terms acceptances, by reader kind",
			},
			[]string{"kind"},
		),
		TransactionRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "community_transaction_retries_total",
			Help: "Transactions retried after a transient conflict",
		}),
	}
}

// ReaderKind labels a reader for metrics
func ReaderKind(signedIn bool) string {
	if signedIn {
		return "user"
	}
	return "guest"
}
