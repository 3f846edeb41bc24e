package stats_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"leave-tracker/internal/leave"
	"leave-tracker/internal/stats"
	"leave-tracker/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeSource struct {
	stats     leave.Stats
	employees []leave.EmployeeStats
}

func (f fakeSource) GetStats(context.Context) leave.Stats { return f.stats }
func (f fakeSource) GetEmployeeStats(context.Context) []leave.EmployeeStats {
	return f.employees
}

func setupRouter(src stats.Source) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	stats.RegisterRoutes(r.Group("/api"), stats.NewHandler(src))
	return r
}

func TestHandler_Overview(t *testing.T) {
	r := setupRouter(fakeSource{stats: leave.Stats{
		TotalEmployees: 4,
		TotalLeaves:    3,
		PendingLeaves:  2,
		ApprovedLeaves: 1,
		LeaveTypeBreakdown: leave.LeaveTypeBreakdown{
			Casual:  2,
			HalfDay: 1,
		},
	}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats/overview", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 4, body["totalEmployees"])
	assert.EqualValues(t, 2, body["pendingLeaves"])
	assert.EqualValues(t, 0, body["rejectedLeaves"])
	breakdown := body["leaveTypeBreakdown"].(map[string]any)
	assert.EqualValues(t, 1, breakdown["halfday"])
	assert.EqualValues(t, 0, breakdown["short"])
}

func TestHandler_Employees(t *testing.T) {
	t.Run("empty list on failure is still 200", func(t *testing.T) {
		r := setupRouter(fakeSource{employees: []leave.EmployeeStats{}})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats/employees", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("rows", func(t *testing.T) {
		r := setupRouter(fakeSource{employees: []leave.EmployeeStats{
			{ID: store.IntID(1), Name: "Anudi", TotalLeaves: 2, ApprovedLeaves: 1, PendingLeaves: 1, CasualLeaves: 2},
		}})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats/employees", nil))

		var rows []map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
		assert.Len(t, rows, 1)
		assert.Equal(t, "1", rows[0]["id"])
		assert.EqualValues(t, 2, rows[0]["casual_leaves"])
	})
}
