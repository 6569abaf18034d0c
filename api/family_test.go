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

func setUserMiddleware(userID uint, email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("userEmail", email)
		c.Next()
	}
}

func familyRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserMiddleware(1, "owner@example.com"))
	h := NewFamilyHandler()
	router.GET("/family/members", h.List)
	router.POST("/family/connect", h.Connect)
	router.DELETE("/family/members/:id", h.Delete)
	return router
}

func TestFamilyHandler_List(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 两个成员：一个已关联，一个待定
	mock.ExpectQuery("SELECT .* FROM `family_links`").
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "member_email", "member_user_id", "status", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, 1, "spouse@example.com", 2, "connected", time.Now(), time.Now(), nil).
			AddRow(2, 1, "kid@example.com", nil, "pending", time.Now(), time.Now(), nil))

	// 已关联成员：查用户信息 + 消费总额
	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password", "auth_provider", "status", "created_at", "updated_at", "deleted_at"}).
			AddRow(2, "Spouse", "spouse@example.com", "hash", "email", "active", time.Now(), time.Now(), nil))
	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(1234.56))

	router := familyRouter()
	req := httptest.NewRequest("GET", "/family/members", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	members := data["members"].([]interface{})
	require.Len(t, members, 2)

	first := members[0].(map[string]interface{})
	assert.Equal(t, "connected", first["status"])
	assert.Equal(t, "Spouse", first["name"])
	assert.InDelta(t, 1234.56, first["total_expense"].(float64), 0.001)

	second := members[1].(map[string]interface{})
	assert.Equal(t, "pending", second["status"])
	assert.Equal(t, float64(0), second["total_expense"])

	assert.InDelta(t, 1234.56, data["family_total"].(float64), 0.001)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFamilyHandler_Connect_Pending(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 未重复邀请
	mock.ExpectQuery("SELECT .* FROM `family_links`").
		WillReturnRows(sqlmock.NewRows([]string{}))
	// 对方尚未注册
	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("newmember@example.com").
		WillReturnRows(sqlmock.NewRows([]string{}))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `family_links`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	router := familyRouter()
	body := `{"email":"NewMember@Example.com"}`
	req := httptest.NewRequest("POST", "/family/connect", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	// 邮箱统一小写保存
	assert.Equal(t, "newmember@example.com", data["member_email"])
	assert.Equal(t, "pending", data["status"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFamilyHandler_Connect_AlreadyRegistered(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `family_links`").
		WillReturnRows(sqlmock.NewRows([]string{}))
	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("spouse@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password", "auth_provider", "status", "created_at", "updated_at", "deleted_at"}).
			AddRow(2, "Spouse", "spouse@example.com", "hash", "email", "active", time.Now(), time.Now(), nil))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `family_links`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	router := familyRouter()
	body := `{"email":"spouse@example.com"}`
	req := httptest.NewRequest("POST", "/family/connect", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "connected", data["status"])
	assert.Equal(t, float64(2), data["member_user_id"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFamilyHandler_Connect_Self(t *testing.T) {
	router := familyRouter()
	body := `{"email":"owner@example.com"}`
	req := httptest.NewRequest("POST", "/family/connect", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "不能邀请自己", resp["message"])
}

func TestFamilyHandler_Connect_Duplicate(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `family_links`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "member_email", "member_user_id", "status", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, 1, "spouse@example.com", nil, "pending", time.Now(), time.Now(), nil))

	router := familyRouter()
	body := `{"email":"spouse@example.com"}`
	req := httptest.NewRequest("POST", "/family/connect", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 409, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFamilyHandler_Delete(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `family_links`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "member_email", "member_user_id", "status", "created_at", "updated_at", "deleted_at"}).
			AddRow(5, 1, "spouse@example.com", nil, "pending", time.Now(), time.Now(), nil))

	// 软删除是一条 UPDATE
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `family_links`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := familyRouter()
	req := httptest.NewRequest("DELETE", "/family/members/5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFamilyHandler_Delete_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `family_links`").
		WillReturnRows(sqlmock.NewRows([]string{}))

	router := familyRouter()
	req := httptest.NewRequest("DELETE", "/family/members/99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
