package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settingsRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	h := NewSettingsHandler()
	router.GET("/settings", h.Get)
	router.PUT("/settings", h.Update)
	return router
}

func TestSettingsHandler_Get_CreatesDefaults(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 首次访问：无记录，创建默认设置
	mock.ExpectQuery("SELECT .* FROM `user_settings`").
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{}))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `user_settings`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	router := settingsRouter()
	req := httptest.NewRequest("GET", "/settings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, true, data["notifications"])
	assert.Equal(t, "INR", data["currency"])
	assert.Equal(t, "en", data["language"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsHandler_Get_Existing(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `user_settings`").
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "notifications", "currency", "language", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, 1, false, "USD", "hi", time.Now(), time.Now(), nil))

	router := settingsRouter()
	req := httptest.NewRequest("GET", "/settings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, false, data["notifications"])
	assert.Equal(t, "USD", data["currency"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsHandler_Update(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	rows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "user_id", "notifications", "currency", "language", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, 1, true, "INR", "en", time.Now(), time.Now(), nil)
	}

	mock.ExpectQuery("SELECT .* FROM `user_settings`").
		WithArgs(uint(1)).
		WillReturnRows(rows())

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `user_settings`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// 更新后重新读取
	mock.ExpectQuery("SELECT .* FROM `user_settings`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "notifications", "currency", "language", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, 1, true, "USD", "en", time.Now(), time.Now(), nil))

	router := settingsRouter()
	body := `{"currency":"USD"}`
	req := httptest.NewRequest("PUT", "/settings", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "设置已更新", resp["message"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "USD", data["currency"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsHandler_Update_UnsupportedCurrency(t *testing.T) {
	router := settingsRouter()
	body := `{"currency":"BTC"}`
	req := httptest.NewRequest("PUT", "/settings", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestSettingsHandler_Update_NoFields(t *testing.T) {
	router := settingsRouter()
	req := httptest.NewRequest("PUT", "/settings", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "没有需要更新的字段", resp["message"])
}
