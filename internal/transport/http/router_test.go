package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"collegeconnect/internal/domain"
	impl "collegeconnect/internal/service/impl"
	"collegeconnect/internal/store"
	"collegeconnect/internal/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	t        *testing.T
	handler  http.Handler
	st       *store.Store
	identity *impl.IdentityServiceImpl
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	st := storetest.New(t)
	tokens := impl.NewTokenServiceHS256(impl.TokenConfig{
		Issuer:     "collegeconnect-test",
		Audience:   "collegeconnect-test-clients",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: time.Hour,
		SigningKey: []byte("router-test-signing-key-0123456789"),
	}, st)
	identity := impl.NewIdentityServiceImpl(st, impl.NewPasswordServiceArgon2id(), tokens)
	svc := Services{
		Identity:      identity,
		Tokens:        tokens,
		Provision:     impl.NewProvisionServiceImpl(st, identity),
		Registrations: impl.NewRegistrationServiceImpl(st),
		Users:         impl.NewUserServiceImpl(st, identity),
		Colleges:      impl.NewCollegeServiceImpl(st),
		CollegeAdmins: impl.NewCollegeAdminServiceImpl(st),
		Counselors:    impl.NewCounselorServiceImpl(st),
		Students:      impl.NewStudentServiceImpl(st),
		Peers:         impl.NewPeerServiceImpl(st),
		Appointments:  impl.NewAppointmentServiceImpl(st),
	}
	return &testAPI{t: t, handler: NewRouter(svc, Options{MaxUploadBytes: 1 << 20}), st: st, identity: identity}
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) login(email, password string) string {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	var res struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(a.t, res.AccessToken)
	return res.AccessToken
}

func (a *testAPI) adminToken() string {
	a.t.Helper()
	_, err := a.identity.CreateUser(context.Background(), "Root", "root@example.com", "password-123", domain.RoleAdmin)
	require.NoError(a.t, err)
	return a.login("root@example.com", "password-123")
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthz(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestProtectedRoutesRequireBearer(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/api/v1/students", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", decode[errorBody](t, rec).Error)

	rec = api.do(http.MethodGet, "/api/v1/students", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterLoginAndMe(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"name":      "Sam",
		"email":     "Sam@Example.com",
		"password":  "password-123",
		"userType":  "student",
		"studentId": "S-100",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	reg := decode[map[string]any](t, rec)
	assert.Equal(t, "student", reg["role"])
	assert.NotEmpty(t, reg["profileId"])

	rec = api.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "sam@example.com", "password": "password-123"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	login := decode[struct {
		AccessToken  string         `json:"accessToken"`
		RefreshToken string         `json:"refreshToken"`
		Profile      map[string]any `json:"profile"`
	}](t, rec)
	assert.Equal(t, "S-100", login.Profile["studentId"])

	rec = api.do(http.MethodGet, "/api/v1/auth/me", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// students cannot reach the admin surface
	rec = api.do(http.MethodGet, "/api/v1/users", login.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refreshToken": login.RefreshToken})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "sam@example.com", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterErrors(t *testing.T) {
	api := newTestAPI(t)
	body := map[string]any{"name": "Pat", "email": "pat@example.com", "password": "password-123", "role": "peer"}

	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/v1/auth/register", "", body).Code)
	assert.Equal(t, http.StatusConflict, api.do(http.MethodPost, "/api/v1/auth/register", "", body).Code)

	body["email"], body["role"] = "boss@example.com", "admin"
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPost, "/api/v1/auth/register", "", body).Code)

	body["role"] = "wizard"
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, "/api/v1/auth/register", "", body).Code)

	// college admins need both documents
	body["role"] = "college_admin"
	body["designation"] = "Dean"
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, "/api/v1/auth/register", "", body).Code)
}

func TestRegisterPeerCannotClaimStudents(t *testing.T) {
	api := newTestAPI(t)
	admin := api.adminToken()

	rec := api.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"name": "Sam", "email": "sam@example.com", "password": "password-123", "role": "student", "studentId": "S-1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	studentID, _ := decode[map[string]any](t, rec)["profileId"].(string)
	require.NotEmpty(t, studentID)

	rec = api.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"name": "Mallory", "email": "mallory@example.com", "password": "password-123", "role": "peer",
		"studentIds": []string{studentID},
	})
	require.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())

	rec = api.do(http.MethodGet, "/api/v1/students/"+studentID, admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotContains(t, decode[map[string]any](t, rec), "peer")

	rec = api.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "mallory@example.com", "password": "password-123"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterMultipartIgnoresBlankFields(t *testing.T) {
	api := newTestAPI(t)
	body, contentType := multipartBody(t, map[string]string{
		"name":      "Lee",
		"email":     "lee@example.com",
		"password":  "password-123",
		"role":      "student",
		"studentId": "S-2",
		"peer":      "",
	}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "student", decode[map[string]any](t, rec)["role"])
}

func multipartBody(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for field, name := range files {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+name+`"`)
		h.Set("Content-Type", "application/pdf")
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 " + name))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestRegistrationReviewFlow(t *testing.T) {
	api := newTestAPI(t)
	admin := api.adminToken()

	body, contentType := multipartBody(t, map[string]string{
		"collegeName":   "Tech University",
		"collegeType":   "private",
		"collegeDomain": "tech.edu",
		"applicantName": "Ada",
		"designation":   "Registrar",
		"email":         "ada@tech.edu",
		"password":      "password-123",
	}, map[string]string{
		"verifiedCollegeDocument": "charter.pdf",
		"proofOfDesignation":      "letter.pdf",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/registrations", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	summary := decode[map[string]any](t, rec)
	id, _ := summary["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "Pending", summary["status"])

	// the applicant has no account until approval
	rec = api.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "ada@tech.edu", "password": "password-123"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodGet, "/api/v1/registrations?status=pending", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.EqualValues(t, 1, decode[map[string]any](t, rec)["total"])

	rec = api.do(http.MethodGet, "/api/v1/registrations/"+id+"/documents/proof?inline=true", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `inline; filename=letter.pdf`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.4 letter.pdf", rec.Body.String())

	rec = api.do(http.MethodPost, "/api/v1/registrations/"+id+"/approve", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	approval := decode[map[string]any](t, rec)
	assert.NotEmpty(t, approval["collegeId"])

	token := api.login("ada@tech.edu", "password-123")
	rec = api.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	me := decode[map[string]any](t, rec)
	profile, _ := me["profile"].(map[string]any)
	assert.Equal(t, "Registrar", profile["designation"])

	rec = api.do(http.MethodGet, "/api/v1/colleges/"+approval["collegeId"].(string)+"/documents/0", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, `attachment; filename=charter.pdf`, rec.Header().Get("Content-Disposition"))

	// the applicant is not an admin
	rec = api.do(http.MethodGet, "/api/v1/registrations", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRegistrationSubmitValidation(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(http.MethodPost, "/api/v1/registrations", "", map[string]string{"collegeName": "No Docs"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_input", decode[errorBody](t, rec).Error)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/registrations", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminUserManagement(t *testing.T) {
	api := newTestAPI(t)
	admin := api.adminToken()

	rec := api.do(http.MethodPost, "/api/v1/users", admin, map[string]string{
		"name": "Casey", "email": "casey@example.com", "password": "password-123", "role": "counsellor",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	user := decode[map[string]any](t, rec)
	id := user["id"].(string)
	assert.Equal(t, "counselor", user["role"])

	rec = api.do(http.MethodGet, "/api/v1/users?role=counselor", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode[map[string]any](t, rec)["total"])

	rec = api.do(http.MethodPatch, "/api/v1/users/"+id+"/status", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode[map[string]any](t, rec)["isActive"])

	rec = api.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "casey@example.com", "password": "password-123"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	assert.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, "/api/v1/users/"+id, admin, nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/api/v1/users/"+id, admin, nil).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/api/v1/users/not-a-uuid", admin, nil).Code)
}

func TestLogoutEndsAccess(t *testing.T) {
	api := newTestAPI(t)
	_, err := api.identity.CreateUser(context.Background(), "Lee", "lee@example.com", "password-123", domain.RoleCounselor)
	require.NoError(t, err)

	rec := api.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "lee@example.com", "password": "password-123"})
	require.Equal(t, http.StatusOK, rec.Code)
	tokens := decode[map[string]any](t, rec)

	rec = api.do(http.MethodPost, "/api/v1/auth/logout", "", map[string]any{"refreshToken": tokens["refreshToken"]})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = api.do(http.MethodGet, "/api/v1/auth/me", tokens["accessToken"].(string), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
