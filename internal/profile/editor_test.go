package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docemarce/internal/api"
	"docemarce/internal/models"
	"docemarce/internal/notify"
	"docemarce/internal/session"
)

// profileServer serves getuser with a fixed record and captures updateuser
// bodies.
func profileServer(t *testing.T, updateStatus int, updates *[]map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/getuser":
			json.NewEncoder(w).Encode([]models.User{{
				Name: "Cliente Demo", Email: "cliente@example.com", Phone: "+55 11 91234-5678", Photo: "http://x/me.png",
			}})
		case "/updateuser":
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			*updates = append(*updates, body)
			w.WriteHeader(updateStatus)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
}

func loadEditor(t *testing.T, srvURL string, rec notify.Notifier) (*Editor, *session.Session) {
	t.Helper()
	client := api.NewClient(api.DefaultEndpoints(srvURL))
	sess, err := session.Login(context.Background(), client, "cliente@example.com", "docinho")
	require.NoError(t, err)
	e := NewEditor(client, rec, sess)
	require.NoError(t, e.Load(context.Background()))
	return e, sess
}

func TestEmailIsNeverEditable(t *testing.T) {
	var updates []map[string]any
	srv := profileServer(t, http.StatusOK, &updates)
	defer srv.Close()

	e, _ := loadEditor(t, srv.URL, &notify.Recorder{})
	assert.False(t, e.Focus(FieldEmail))
	assert.False(t, e.Editing(FieldEmail))
	assert.ErrorIs(t, e.Set(FieldEmail, "new@example.com"), ErrNotEditable)
}

func TestFieldsToggleIndependently(t *testing.T) {
	var updates []map[string]any
	srv := profileServer(t, http.StatusOK, &updates)
	defer srv.Close()

	e, _ := loadEditor(t, srv.URL, &notify.Recorder{})

	// Writing a non-focused field is rejected.
	assert.ErrorIs(t, e.Set(FieldName, "Nova"), ErrNotEditable)

	require.True(t, e.Focus(FieldName))
	require.NoError(t, e.Set(FieldName, "Nova Cliente"))
	assert.False(t, e.Editing(FieldPhone), "focusing name must not open phone")
	e.Blur(FieldName)
	assert.False(t, e.Editing(FieldName))
	assert.Equal(t, "Nova Cliente", e.User().Name)
}

func TestSaveSendsSessionPasswordAndKeepsSession(t *testing.T) {
	var updates []map[string]any
	srv := profileServer(t, http.StatusOK, &updates)
	defer srv.Close()

	rec := &notify.Recorder{}
	e, sess := loadEditor(t, srv.URL, rec)

	e.Focus(FieldPhone)
	require.NoError(t, e.Set(FieldPhone, "+55 11 90000-0000"))
	e.Blur(FieldPhone)

	require.NoError(t, e.Save(context.Background()))
	require.Len(t, updates, 1)
	assert.Equal(t, "docinho", updates[0]["password"], "save carries the session credential")
	assert.Equal(t, "+55 11 90000-0000", updates[0]["phone"])
	assert.NotContains(t, updates[0], "newPassword")

	// The session keeps the pre-edit identity; it is not refreshed.
	assert.Equal(t, "+55 11 91234-5678", sess.User().Phone)
	assert.Equal(t, []string{"Dados atualizados com sucesso!"}, rec.Successes)
}

func TestChangePasswordValidatesLocally(t *testing.T) {
	var updates []map[string]any
	srv := profileServer(t, http.StatusOK, &updates)
	defer srv.Close()

	rec := &notify.Recorder{}
	e, _ := loadEditor(t, srv.URL, rec)

	for _, tc := range []struct{ current, n1, n2 string }{
		{"", "a", "a"},
		{"docinho", "", ""},
		{"docinho", "a", "b"},
	} {
		err := e.ChangePassword(context.Background(), tc.current, tc.n1, tc.n2)
		assert.ErrorIs(t, err, ErrPasswordMismatch)
	}
	assert.Empty(t, updates, "invalid forms must not reach the network")
	assert.Len(t, rec.Errors, 3)
}

func TestChangePasswordSuccessUpdatesSessionCredential(t *testing.T) {
	var updates []map[string]any
	srv := profileServer(t, http.StatusOK, &updates)
	defer srv.Close()

	rec := &notify.Recorder{}
	e, sess := loadEditor(t, srv.URL, rec)

	require.NoError(t, e.ChangePassword(context.Background(), "docinho", "brigadeiro", "brigadeiro"))
	require.Len(t, updates, 1)
	assert.Equal(t, "docinho", updates[0]["password"])
	assert.Equal(t, "brigadeiro", updates[0]["newPassword"])
	assert.Equal(t, "brigadeiro", sess.Password())
	assert.Equal(t, []string{"Senha alterada com sucesso!"}, rec.Successes)
}

func TestChangePasswordFailureLeavesSession(t *testing.T) {
	var updates []map[string]any
	srv := profileServer(t, http.StatusUnauthorized, &updates)
	defer srv.Close()

	rec := &notify.Recorder{}
	e, sess := loadEditor(t, srv.URL, rec)

	err := e.ChangePassword(context.Background(), "errada", "nova", "nova")
	require.Error(t, err)
	assert.Equal(t, "docinho", sess.Password())
	assert.Equal(t, []string{"Não foi possível atualizar a senha."}, rec.Errors)
}
