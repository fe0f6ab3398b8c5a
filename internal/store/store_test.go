package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_StateReturnsIndependentCopy(t *testing.T) {
	s := New()
	s.Dispatch(AddSearchQuery{Query: "wheat"})
	s.Dispatch(SetUser{User: &User{ID: 1, Name: "Ram", PrimaryCrops: []string{"Wheat"}}})

	snap := s.State()
	snap.SearchHistory[0] = "tampered"
	snap.User.Name = "tampered"
	snap.User.PrimaryCrops[0] = "tampered"

	fresh := s.State()
	assert.Equal(t, "wheat", fresh.SearchHistory[0])
	assert.Equal(t, "Ram", fresh.User.Name)
	assert.Equal(t, "Wheat", fresh.User.PrimaryCrops[0])
}

func TestStore_DispatchStampsNotificationIDAndTimestamp(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	s := New(WithClock(clock.Now))

	s.Dispatch(AddNotification{Notification: Notification{Type: SeverityInfo, Title: "a"}})
	s.Dispatch(AddNotification{Notification: Notification{Type: SeverityInfo, Title: "b"}})

	state := s.State()
	require.Len(t, state.Notifications, 2)
	assert.NotEmpty(t, state.Notifications[0].ID)
	assert.NotEmpty(t, state.Notifications[1].ID)
	// Same-instant dispatches still get distinct IDs.
	assert.NotEqual(t, state.Notifications[0].ID, state.Notifications[1].ID)
	assert.Equal(t, clock.Now(), state.Notifications[0].Timestamp)
}

func TestStore_SubscribersSeeBeforeAndAfter(t *testing.T) {
	s := New()

	var prevLang, nextLang string
	unsubscribe := s.Subscribe(func(prev, next AppState) {
		prevLang = prev.Language
		nextLang = next.Language
	})

	s.Dispatch(SetLanguage{Language: "hi"})
	assert.Equal(t, "en", prevLang)
	assert.Equal(t, "hi", nextLang)

	unsubscribe()
	s.Dispatch(SetLanguage{Language: "ta"})
	assert.Equal(t, "hi", nextLang, "unsubscribed callback must not fire")
}

func TestStore_ConcurrentDispatchesAreSerialized(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Dispatch(AddSearchQuery{Query: "wheat"})
		}()
		go func() {
			defer wg.Done()
			s.Dispatch(AddNotification{Notification: Notification{Type: SeverityInfo, Title: "t"}})
		}()
	}
	wg.Wait()

	state := s.State()
	assert.Equal(t, []string{"wheat"}, state.SearchHistory)
	assert.Equal(t, 25, len(state.Notifications))
}

func TestStore_TranslateFallsBackToSourcePhrase(t *testing.T) {
	s := New()
	s.Dispatch(SetLanguage{Language: "hi"})

	// Before the loader resolves, the original text renders.
	assert.Equal(t, "Price", s.Translate("Price"))

	s.Dispatch(SetTranslations{Language: "hi", Translations: map[string]string{"Price": "कीमत"}})
	assert.Equal(t, "कीमत", s.Translate("Price"))
	assert.Equal(t, "Harvest", s.Translate("Harvest"))

	// English is identity.
	s.Dispatch(SetLanguage{Language: "en"})
	assert.Equal(t, "Price", s.Translate("Price"))
}

func TestStore_WithInitialState(t *testing.T) {
	seed := NewState()
	seed.Theme = ThemeDark
	seed.Language = "bn"

	s := New(WithInitialState(seed))
	state := s.State()
	assert.Equal(t, ThemeDark, state.Theme)
	assert.Equal(t, "bn", state.Language)
}

func TestStore_IsFavoriteCrop(t *testing.T) {
	s := New()
	assert.False(t, s.IsFavoriteCrop("Cotton"))
	s.Dispatch(AddFavoriteCrop{Crop: "Cotton"})
	assert.True(t, s.IsFavoriteCrop("Cotton"))
}
