package webserver_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/social-watch/rumour-tracker/src/api/config"
	"github.com/social-watch/rumour-tracker/src/api/data"
	"github.com/social-watch/rumour-tracker/src/api/types"
	"github.com/social-watch/rumour-tracker/src/api/webserver"
)

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, data.Migrate(db))

	cfg := config.Config{Port: "0", PanicThreshold: 5}
	return webserver.New(cfg, db, nil), db
}

func seedFixtures(t *testing.T, db *gorm.DB) []types.User {
	t.Helper()
	users := []types.User{
		{Username: "user001", Name: "Somchai", Role: types.RoleGeneral},
		{Username: "user002", Name: "Somying", Role: types.RoleGeneral},
		{Username: "user003", Name: "Wichai", Role: types.RoleGeneral},
		{Username: "user004", Name: "Manee", Role: types.RoleGeneral},
		{Username: "user005", Name: "Prasert", Role: types.RoleGeneral},
		{Username: "user006", Name: "Pim", Role: types.RoleGeneral},
		{Username: "verifier001", Name: "Dr. Vera", Role: types.RoleVerifier, VerifierCode: "V001"},
	}
	require.NoError(t, db.Create(&users).Error)
	require.NoError(t, db.Create(&types.Rumour{
		RumourID:    12345678,
		Title:       "free money app",
		Source:      "Facebook",
		CreatedDate: time.Now().Add(-time.Hour),
		Status:      types.StatusNormal,
	}).Error)
	return users
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func submitReport(r *gin.Engine, rumourID, userID uint64, kind string) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, fmt.Sprintf("/v1/rumours/%d/reports", rumourID),
		gin.H{"userId": userID, "reportType": kind})
}

func TestPanicEscalationAtThreshold(t *testing.T) {
	r, db := newTestServer(t)
	users := seedFixtures(t, db)

	// four falsehood reports: still normal, credibility 0
	for _, u := range users[:4] {
		w := submitReport(r, 12345678, u.UserID, types.ReportFalsehood)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		body := decode(t, w)
		assert.False(t, body["panic"].(bool))
		assert.Equal(t, 0.0, body["credibilityScore"].(float64))
	}

	var rum types.Rumour
	require.NoError(t, db.First(&rum, "rumour_id = ?", 12345678).Error)
	assert.Equal(t, types.StatusNormal, rum.Status)

	// fifth report crosses the threshold and is credible: 1/5 -> 20.0
	w := submitReport(r, 12345678, users[4].UserID, types.ReportCredible)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.True(t, body["panic"].(bool))
	assert.Equal(t, 20.0, body["credibilityScore"].(float64))

	require.NoError(t, db.First(&rum, "rumour_id = ?", 12345678).Error)
	assert.Equal(t, types.StatusPanic, rum.Status)
	assert.Equal(t, 20.0, rum.CredibilityScore)

	// a sixth report does not re-escalate but keeps recomputing
	w = submitReport(r, 12345678, users[5].UserID, types.ReportIncitement)
	require.Equal(t, http.StatusCreated, w.Code)
	body = decode(t, w)
	assert.False(t, body["panic"].(bool))
	assert.Equal(t, 16.67, body["credibilityScore"].(float64))
}

func TestDuplicateReportRejected(t *testing.T) {
	r, db := newTestServer(t)
	users := seedFixtures(t, db)

	w := submitReport(r, 12345678, users[0].UserID, types.ReportFalsehood)
	require.Equal(t, http.StatusCreated, w.Code)

	w = submitReport(r, 12345678, users[0].UserID, types.ReportCredible)
	assert.Equal(t, http.StatusConflict, w.Code)

	var n int64
	require.NoError(t, db.Model(&types.Report{}).Where("rumour_id = ?", 12345678).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestReportValidation(t *testing.T) {
	r, db := newTestServer(t)
	users := seedFixtures(t, db)

	// missing fields
	w := doJSON(r, http.MethodPost, "/v1/rumours/12345678/reports", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown report type
	w = submitReport(r, 12345678, users[0].UserID, "gossip")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown rumour
	w = submitReport(r, 99999999, users[0].UserID, types.ReportFalsehood)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// unknown user
	w = submitReport(r, 12345678, 424242, types.ReportFalsehood)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVerificationFlow(t *testing.T) {
	r, db := newTestServer(t)
	users := seedFixtures(t, db)
	verifier := users[6]

	w := doJSON(r, http.MethodPost, "/v1/rumours/12345678/verify",
		gin.H{"verifierId": verifier.UserID, "result": types.ReportFalsehood})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var rum types.Rumour
	require.NoError(t, db.First(&rum, "rumour_id = ?", 12345678).Error)
	assert.True(t, rum.IsVerified)
	assert.Equal(t, types.ReportFalsehood, rum.VerificationResult)
	require.NotNil(t, rum.VerifiedBy)
	assert.Equal(t, verifier.UserID, *rum.VerifiedBy)

	// verification is terminal: no further reports
	w = submitReport(r, 12345678, users[0].UserID, types.ReportFalsehood)
	assert.Equal(t, http.StatusConflict, w.Code)

	// and no second verification
	w = doJSON(r, http.MethodPost, "/v1/rumours/12345678/verify",
		gin.H{"verifierId": verifier.UserID, "result": types.ReportCredible})
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NoError(t, db.First(&rum, "rumour_id = ?", 12345678).Error)
	assert.Equal(t, types.ReportFalsehood, rum.VerificationResult)
}

func TestVerificationRequiresVerifierRole(t *testing.T) {
	r, db := newTestServer(t)
	users := seedFixtures(t, db)

	w := doJSON(r, http.MethodPost, "/v1/rumours/12345678/verify",
		gin.H{"verifierId": users[0].UserID, "result": types.ReportFalsehood})
	assert.Equal(t, http.StatusForbidden, w.Code)

	var rum types.Rumour
	require.NoError(t, db.First(&rum, "rumour_id = ?", 12345678).Error)
	assert.False(t, rum.IsVerified)
}

func TestVerificationValidation(t *testing.T) {
	r, db := newTestServer(t)
	users := seedFixtures(t, db)

	w := doJSON(r, http.MethodPost, "/v1/rumours/12345678/verify", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/v1/rumours/99999999/verify",
		gin.H{"verifierId": users[6].UserID, "result": types.ReportFalsehood})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListView(t *testing.T) {
	r, db := newTestServer(t)
	users := seedFixtures(t, db)
	require.NoError(t, db.Create(&types.Rumour{
		RumourID:    23456789,
		Title:       "miracle cure",
		Source:      "LINE",
		CreatedDate: time.Now(),
		Status:      types.StatusNormal,
	}).Error)

	// two reports for the newer rumour, one for the older
	submitReport(r, 23456789, users[0].UserID, types.ReportFalsehood)
	submitReport(r, 23456789, users[1].UserID, types.ReportFalsehood)
	submitReport(r, 12345678, users[2].UserID, types.ReportCredible)

	w := doJSON(r, http.MethodGet, "/v1/rumours", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Rumours []types.RumourWithCount `json:"rumours"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Rumours, 2)
	assert.Equal(t, uint64(23456789), body.Rumours[0].RumourID)
	assert.Equal(t, int64(2), body.Rumours[0].ReportCount)
	assert.Equal(t, uint64(12345678), body.Rumours[1].RumourID)
	assert.Equal(t, int64(1), body.Rumours[1].ReportCount)
}

func TestDetailView(t *testing.T) {
	r, db := newTestServer(t)
	users := seedFixtures(t, db)

	submitReport(r, 12345678, users[0].UserID, types.ReportFalsehood)

	w := doJSON(r, http.MethodGet, "/v1/rumours/12345678", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)

	assert.Equal(t, float64(1), body["reportCount"].(float64))
	assert.Len(t, body["users"].([]interface{}), 7)
	assert.Len(t, body["verifiers"].([]interface{}), 1)

	reports := body["reports"].([]interface{})
	require.Len(t, reports, 1)
	entry := reports[0].(map[string]interface{})
	assert.Equal(t, "user001", entry["username"])

	w = doJSON(r, http.MethodGet, "/v1/rumours/99999999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSummaryView(t *testing.T) {
	r, db := newTestServer(t)
	require.NoError(t, data.Seed(db))

	w := doJSON(r, http.MethodGet, "/v1/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)

	assert.Equal(t, float64(8), body["totalRumours"])
	assert.Equal(t, float64(1), body["verifiedCount"])
	assert.Equal(t, float64(3), body["panicCount"])
	assert.Equal(t, float64(7), body["pendingCount"])
	assert.Len(t, body["panicRumours"].([]interface{}), 3)
}

func TestAdminCreateRumour(t *testing.T) {
	r, db := newTestServer(t)

	w := doJSON(r, http.MethodPost, "/v1/admin/rumours", gin.H{
		"rumourId": 34567890,
		"title":    "bank collapse",
		"content":  "a <script>alert(1)</script>rumour about a bank",
		"source":   "WhatsApp",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var rum types.Rumour
	require.NoError(t, db.First(&rum, "rumour_id = ?", 34567890).Error)
	assert.Equal(t, types.StatusNormal, rum.Status)
	assert.NotContains(t, rum.Content, "<script>")

	// id must be 8 digits
	w = doJSON(r, http.MethodPost, "/v1/admin/rumours", gin.H{
		"rumourId": 1234,
		"title":    "short id",
		"source":   "X",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// duplicate id
	w = doJSON(r, http.MethodPost, "/v1/admin/rumours", gin.H{
		"rumourId": 34567890,
		"title":    "again",
		"source":   "X",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAdminCreateUser(t *testing.T) {
	r, db := newTestServer(t)

	w := doJSON(r, http.MethodPost, "/v1/admin/users", gin.H{
		"username": "user099",
		"name":     "New User",
		"role":     types.RoleGeneral,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// verifier without a code is rejected
	w = doJSON(r, http.MethodPost, "/v1/admin/users", gin.H{
		"username": "verifier099",
		"name":     "New Verifier",
		"role":     types.RoleVerifier,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// general user with a code is rejected
	w = doJSON(r, http.MethodPost, "/v1/admin/users", gin.H{
		"username":     "user098",
		"name":         "Sneaky",
		"role":         types.RoleGeneral,
		"verifierCode": "V009",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var n int64
	require.NoError(t, db.Model(&types.User{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}
