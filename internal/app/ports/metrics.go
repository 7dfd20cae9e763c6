package ports

import "ouroverse/internal/domain/serpent"

type SessionMetrics interface {
	RecordBite(outcome serpent.Outcome)
	RecordAutoBite()
	RecordPurchase(upgradeID string)
	RecordShed()
	RecordAscension()
	RecordSaveFailure()
}
