package livestate

import (
	"context"
	"testing"
	"time"

	"github.com/estafette/estafette-ci-dashboard/pkg/contracts"
	"github.com/stretchr/testify/assert"
)

func TestSessionDispatch(t *testing.T) {

	t.Run("AppliesToBothCachesThenRegistry", func(t *testing.T) {

		session := NewSession("s1", nil)
		session.RepoBuilds.Initialize(getEntries())
		session.Detail.Initialize(contracts.BuildResult{Build: contracts.Build{ID: 2, Branch: "dev"}})

		var statusSeenByHandler contracts.BuildStatus
		session.Registry.Subscribe(KindBuild, BuildScope(2), func(ev Event) {
			statusSeenByHandler = session.Detail.Snapshot().Build.Status
		})

		// act
		session.Dispatch(BuildEvent{RepoName: "ding", Build: contracts.Build{ID: 2, Branch: "dev", Status: contracts.BuildStatusSuccess}})

		assert.Equal(t, contracts.BuildStatusSuccess, session.RepoBuilds.Snapshot()[0].Builds[1].Status)
		assert.Equal(t, contracts.BuildStatusSuccess, session.Detail.Snapshot().Build.Status)
		assert.Equal(t, contracts.BuildStatusSuccess, statusSeenByHandler)
	})

	t.Run("ContinuesAfterUnknownScope", func(t *testing.T) {

		session := NewSession("s1", nil)
		session.RepoBuilds.Initialize(getEntries())
		called := false
		session.Registry.Subscribe(KindBuild, "", func(ev Event) { called = true })

		// act
		session.Dispatch(BuildEvent{RepoName: "unknown", Build: contracts.Build{ID: 3}})

		assert.True(t, called)
		assert.Equal(t, []string{"ding", "sherpa"}, repoNames(session.RepoBuilds.Snapshot()))
	})

	t.Run("ContinuesAfterPanickingListener", func(t *testing.T) {

		session := NewSession("s1", nil)
		session.RepoBuilds.Initialize(getEntries())
		session.RepoBuilds.Subscribe("broken", func(entries []contracts.RepoBuilds) { panic("broken view") })

		// act
		session.Dispatch(RemoveRepoEvent{RepoName: "ding"})
		session.Dispatch(RemoveRepoEvent{RepoName: "sherpa"})

		assert.Equal(t, 0, len(session.RepoBuilds.Snapshot()))
	})
}

func TestSessionRun(t *testing.T) {

	t.Run("AppliesMessagesInOrderUntilChannelCloses", func(t *testing.T) {

		topic := NewEventTopic("test")
		session := NewSession("s1", nil)
		session.RepoBuilds.Initialize([]contracts.RepoBuilds{{Repo: contracts.Repo{Name: "r"}, Builds: []contracts.Build{}}})
		ch := topic.Subscribe(session.ID, 16)

		status := Connected(time.Now().UTC())
		topic.Publish("test", EventTopicMessage{Status: &status})
		topic.Publish("test", EventTopicMessage{Event: BuildEvent{RepoName: "r", Build: contracts.Build{ID: 10, Branch: "main"}}})
		topic.Publish("test", EventTopicMessage{Event: BuildEvent{RepoName: "r", Build: contracts.Build{ID: 11, Branch: "dev"}}})
		topic.Publish("test", EventTopicMessage{Event: BuildEvent{RepoName: "r", Build: contracts.Build{ID: 12, Branch: "main"}}})
		topic.Unsubscribe(session.ID)

		// act
		session.Run(context.Background(), ch)

		assert.Equal(t, []int{11, 12}, buildIDs(session.RepoBuilds.Snapshot()[0].Builds))
		assert.True(t, session.LiveStatus().Available)
	})

	t.Run("ReturnsWhenContextIsCancelled", func(t *testing.T) {

		session := NewSession("s1", nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// act
		session.Run(ctx, make(chan EventTopicMessage))

		assert.False(t, session.IsLoading())
	})
}

func TestSessionLiveStatus(t *testing.T) {

	t.Run("StartsUnavailable", func(t *testing.T) {

		// act
		session := NewSession("s1", nil)

		assert.False(t, session.LiveStatus().Available)
		assert.Equal(t, "Connection error, no live updates.", session.LiveStatus().Message)
	})

	t.Run("ReportsMissedUpdatesUntilReset", func(t *testing.T) {

		session := NewSession("s1", nil)
		session.SetLiveStatus(Connected(time.Now().UTC()))
		var received []LiveStatus
		session.SubscribeStatus("view", func(status LiveStatus) { received = append(received, status) })

		// act
		session.handle(EventTopicMessage{Dropped: 3})

		assert.False(t, session.LiveStatus().Available)
		session.ResetMissed()
		assert.True(t, session.LiveStatus().Available)
		if assert.Equal(t, 2, len(received)) {
			assert.False(t, received[0].Available)
			assert.True(t, received[1].Available)
		}
	})
}

func TestSessionIdleSince(t *testing.T) {

	t.Run("MeasuresFromLastTouch", func(t *testing.T) {

		now := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
		session := NewSession("s1", func() time.Time { return now })
		now = now.Add(10 * time.Minute)
		session.Touch()

		// act
		now = now.Add(time.Minute)

		assert.Equal(t, time.Minute, session.IdleSince())
	})
}

func TestSessionCloseView(t *testing.T) {

	t.Run("DropsViewState", func(t *testing.T) {

		session := NewSession("s1", nil)
		session.SetView(View{Kind: ViewBuild, RepoName: "ding", BuildID: 1})
		session.RepoBuilds.Initialize(getEntries())
		session.Detail.Initialize(contracts.BuildResult{Build: contracts.Build{ID: 1}})
		session.Registry.Subscribe(KindRemoveBuild, BuildScope(1), func(ev Event) {})

		// act
		session.CloseView("")

		assert.False(t, session.RepoBuilds.IsInitialized())
		assert.False(t, session.Detail.IsOpen())
		assert.Equal(t, 0, session.Registry.Len())
		assert.Equal(t, View{}, session.View())
	})

	t.Run("KeepsViewWithReasonWhenClosedByServer", func(t *testing.T) {

		session := NewSession("s1", nil)
		session.SetView(View{Kind: ViewRepo, RepoName: "ding"})
		var received []View
		session.SubscribeView("client", func(view View) { received = append(received, view) })

		// act
		session.CloseView("Repository removed.")

		if assert.Equal(t, 1, len(received)) {
			assert.Equal(t, ViewRepo, received[0].Kind)
			assert.Equal(t, "Repository removed.", received[0].ClosedReason)
		}
	})
}
