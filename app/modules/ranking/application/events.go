package rankingservice

import (
	"time"

	"github.com/Black-And-White-Club/impiccato-bot/app/events"
	rankingdomain "github.com/Black-And-White-Club/impiccato-bot/app/modules/ranking/domain"
)

const (
	pointsAwardedTopic = events.PointsAwardedV1
	dailyResetTopic    = events.DailyResetV1
)

func newPointsAwarded(userID, name string, delta int, reason string, daily, historical rankingdomain.Entry, at time.Time) events.PointsAwardedPayloadV1 {
	return events.PointsAwardedPayloadV1{
		UserID:     userID,
		Name:       name,
		Delta:      delta,
		Reason:     reason,
		Daily:      daily.Points,
		Historical: historical.Points,
		AwardedAt:  at.UTC(),
	}
}

func newDailyReset(date string, manual bool) events.DailyResetPayloadV1 {
	return events.DailyResetPayloadV1{Date: date, Manual: manual}
}
