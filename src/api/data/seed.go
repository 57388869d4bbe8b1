package data

import (
	"log"
	"time"

	"github.com/social-watch/rumour-tracker/src/api/types"
	"gorm.io/gorm"
)

// Seed populates the database with a sample population: ten general users,
// three verifiers, eight rumours and a spread of reports. It is a no-op when
// users already exist, so it is safe to run on every start.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&types.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Printf("seed: database already populated, skipping")
		return nil
	}

	users := []types.User{
		{Username: "user001", Name: "Somchai Jaidee", Role: types.RoleGeneral},
		{Username: "user002", Name: "Somying Rakdee", Role: types.RoleGeneral},
		{Username: "user003", Name: "Wichai Riandee", Role: types.RoleGeneral},
		{Username: "user004", Name: "Manee Thamdee", Role: types.RoleGeneral},
		{Username: "user005", Name: "Prasert Sukjai", Role: types.RoleGeneral},
		{Username: "user006", Name: "Pim Raksa", Role: types.RoleGeneral},
		{Username: "user007", Name: "Surachai Mankhong", Role: types.RoleGeneral},
		{Username: "user008", Name: "Thanakorn Srisuk", Role: types.RoleGeneral},
		{Username: "user009", Name: "Kanlaya Aree", Role: types.RoleGeneral},
		{Username: "user010", Name: "Anucha Wongyai", Role: types.RoleGeneral},
		{Username: "verifier001", Name: "Dr. Somchai Wittayasart", Role: types.RoleVerifier, VerifierCode: "V001"},
		{Username: "verifier002", Name: "Asst. Prof. Somying Technology", Role: types.RoleVerifier, VerifierCode: "V002"},
		{Username: "verifier003", Name: "Assoc. Prof. Dr. Wichai Computer", Role: types.RoleVerifier, VerifierCode: "V003"},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}

	now := time.Now()
	verifierID := users[10].UserID

	// Credibility scores and panic statuses below match the report spread
	// seeded further down (the services would recompute the same values).
	rumours := []types.Rumour{
		{
			RumourID: 12345678,
			Title:    "Government hands out 10,000 baht for free through a new app",
			Content:  "A message is spreading that the government will give everyone 10,000 baht through a new application after they enter personal details and a bank account number. No agency has confirmed it.",
			Source:   "Facebook", CreatedDate: now.Add(-5 * 24 * time.Hour),
			CredibilityScore: 0, Status: types.StatusNormal,
		},
		{
			RumourID: 23456789,
			Title:    "Miracle drug cures cancer in 3 days",
			Content:  "An advertised herbal remedy claims to cure cancer within three days without medical treatment. It sells at a very high price and has no scientific evidence behind it.",
			Source:   "LINE group", CreatedDate: now.Add(-4 * 24 * time.Hour),
			CredibilityScore: 16.67, Status: types.StatusPanic,
		},
		{
			RumourID: 34567890,
			Title:    "Government will tax 50% of every bank account",
			Content:  "A message claims a new law will tax all bank deposits at 50% to pay down public debt, driving panicked customers to withdraw their savings.",
			Source:   "Twitter", CreatedDate: now.Add(-3 * 24 * time.Hour),
			CredibilityScore: 12.5, Status: types.StatusPanic,
		},
		{
			RumourID: 45678901,
			Title:    "Bangkok tap water is contaminated and dangerous",
			Content:  "Reports claim tap water across Bangkok is contaminated with hazardous chemicals and unfit for drinking or cooking, urging people to buy bottled water instead.",
			Source:   "TikTok", CreatedDate: now.Add(-2 * 24 * time.Hour),
			CredibilityScore: 50, Status: types.StatusNormal,
		},
		{
			RumourID: 56789012,
			Title:    "Massive storm will flood the whole country next week",
			Content:  "A forwarded warning says a huge storm will hit next week and cause nationwide flooding, telling people to prepare to evacuate.",
			Source:   "Facebook", CreatedDate: now.Add(-24 * time.Hour),
			CredibilityScore: 66.67, Status: types.StatusNormal,
		},
		{
			RumourID: 67890123,
			Title:    "New virus more dangerous than COVID-19 released",
			Content:  "Posts claim a new virus strain with far higher transmission and fatality rates is spreading rapidly across several countries. Fact checking found the claim to be false.",
			Source:   "LINE", CreatedDate: now.Add(-12 * time.Hour),
			CredibilityScore: 0, Status: types.StatusPanic,
			IsVerified: true, VerificationResult: types.ReportFalsehood, VerifiedBy: &verifierID,
		},
		{
			RumourID: 78901234,
			Title:    "Major bank about to collapse, withdraw your money now",
			Content:  "A rumour says a leading bank is about to go bankrupt over liquidity problems and customers should withdraw everything before it fails.",
			Source:   "WhatsApp", CreatedDate: now.Add(-6 * time.Hour),
			CredibilityScore: 0, Status: types.StatusNormal,
		},
		{
			RumourID: 89012345,
			Title:    "Celebrity death hoax spreading on social media",
			Content:  "Posts are circulating that a well known actor has died in an accident. No news outlet has reported it and the actor's page is still active.",
			Source:   "X", CreatedDate: now.Add(-1 * time.Hour),
			CredibilityScore: 100, Status: types.StatusNormal,
		},
	}
	if err := db.Create(&rumours).Error; err != nil {
		return err
	}

	type seedReport struct {
		user     int // index into users
		rumour   uint64
		kind     string
		hoursAgo int
	}
	spread := []seedReport{
		{0, 12345678, types.ReportFalsehood, 100},
		{1, 12345678, types.ReportDistortion, 90},
		{2, 12345678, types.ReportFalsehood, 80},

		{0, 23456789, types.ReportFalsehood, 88},
		{1, 23456789, types.ReportFalsehood, 84},
		{2, 23456789, types.ReportFalsehood, 80},
		{3, 23456789, types.ReportFalsehood, 76},
		{4, 23456789, types.ReportCredible, 72},
		{5, 23456789, types.ReportIncitement, 68},

		{1, 34567890, types.ReportIncitement, 60},
		{2, 34567890, types.ReportIncitement, 58},
		{3, 34567890, types.ReportIncitement, 56},
		{4, 34567890, types.ReportIncitement, 54},
		{5, 34567890, types.ReportIncitement, 52},
		{6, 34567890, types.ReportFalsehood, 50},
		{7, 34567890, types.ReportFalsehood, 48},
		{8, 34567890, types.ReportCredible, 46},

		{3, 45678901, types.ReportDistortion, 40},
		{4, 45678901, types.ReportCredible, 38},

		{0, 56789012, types.ReportCredible, 20},
		{6, 56789012, types.ReportFalsehood, 18},
		{7, 56789012, types.ReportCredible, 16},

		{0, 67890123, types.ReportFalsehood, 11},
		{1, 67890123, types.ReportFalsehood, 10},
		{2, 67890123, types.ReportFalsehood, 9},
		{3, 67890123, types.ReportFalsehood, 8},
		{4, 67890123, types.ReportFalsehood, 7},

		{2, 78901234, types.ReportIncitement, 5},
		{5, 78901234, types.ReportFalsehood, 4},

		{9, 89012345, types.ReportCredible, 1},
	}
	reports := make([]types.Report, 0, len(spread))
	for _, s := range spread {
		reports = append(reports, types.Report{
			UserID:     users[s.user].UserID,
			RumourID:   s.rumour,
			ReportDate: now.Add(-time.Duration(s.hoursAgo) * time.Hour),
			ReportType: s.kind,
		})
	}
	if err := db.Create(&reports).Error; err != nil {
		return err
	}

	setting := types.Setting{Name: "panic_threshold", Value: "5"}
	if err := db.Where("name = ?", setting.Name).FirstOrCreate(&setting).Error; err != nil {
		return err
	}

	log.Printf("seed: inserted %d users, %d rumours, %d reports", len(users), len(rumours), len(reports))
	return nil
}
