package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/cards/engine"
)

func TestLeaderboardProjection(t *testing.T) {
	proj := LeaderboardProjection()

	assert.Equal(t,
		[]string{"الترتيب", "رقم العضوية", "الاسم", "الحلقة", "عدد البطاقات", "مجموع النقاط", "النقاط القصوى", "النسبة المئوية"},
		proj.Header())

	entries := []engine.RankEntry{
		{
			Aggregate: engine.Aggregate{
				UserID: 7, Name: "أحمد", Cards: 3,
				TotalScore: 240, MaxScore: 330, Percentage: 72.7,
			},
			Rank: 1,
		},
	}
	rows := proj.Rows(entries, func(e engine.RankEntry) map[string]any {
		return map[string]any{"member_id": 1007, "circle": "حلقة النور"}
	})

	assert.Len(t, rows, 1)
	assert.Equal(t, []any{1, "1007", "أحمد", "حلقة النور", 3, 240.0, 330.0, 72.7}, rows[0])
}

func TestLeaderboardProjectionMissingMeta(t *testing.T) {
	proj := LeaderboardProjection()
	rows := proj.Rows(
		[]engine.RankEntry{{Aggregate: engine.Aggregate{UserID: 1, Name: "سالم"}, Rank: 1}},
		func(engine.RankEntry) map[string]any { return nil },
	)
	assert.Equal(t, "", rows[0][1], "member_id column empty when meta is absent")
	assert.Equal(t, "", rows[0][3], "circle column empty when meta is absent")
}

func TestCardDetailRowMatchesHeader(t *testing.T) {
	header := CardDetailHeader()

	card := engine.Scorecard{
		UserID: 3,
		Date:   time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),
		Scores: []float64{10, 5, 10, 0, 5, 5, 10, 10, 0, 5, 7},
		Note:   "زيارة مريض",
	}
	row := CardDetailRow("1003", "أحمد", card)

	assert.Len(t, row, len(header))
	assert.Equal(t, "2026-02-20", row[2])
	assert.Equal(t, "زيارة مريض", row[len(row)-2])
	assert.Equal(t, 67.0, row[len(row)-1])
}

func TestLabelFallsBackToKey(t *testing.T) {
	assert.Equal(t, "أنثى", Label(GenderLabels, "female"))
	assert.Equal(t, "other", Label(GenderLabels, "other"))
}

func TestImportTemplateIsPrefixOfUserExport(t *testing.T) {
	export := UserExportHeader()
	template := ImportTemplateHeader()

	// Export adds the member number in front and the admin-only columns at
	// the end; the template columns appear in the same order in between.
	assert.Equal(t, template, export[1:1+len(template)])
}
