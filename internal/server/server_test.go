package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rverbeek/ifctakeoff/internal/config"
	"github.com/rverbeek/ifctakeoff/internal/process"
)

const sampleIFC = `ISO-10303-21;
HEADER;
FILE_SCHEMA(('IFC4'));
ENDSEC;
DATA;
#1=IFCSPACE('SPACE00000000000000001',$,'Office 1.01',$,$,$,$,$,$,$,$,$);
#10=IFCQUANTITYVOLUME('NetVolume',$,$,12.5);
#11=IFCELEMENTQUANTITY('QSET000000000000000001',$,'Qto_SpaceBaseQuantities',$,$,(#10));
#12=IFCRELDEFINESBYPROPERTIES('REL0000000000000000001',$,$,$,(#1),#11);
ENDSEC;
END-ISO-10303-21;
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{
		UploadDir:      t.TempDir(),
		ResultDir:      t.TempDir(),
		MaxUploadBytes: 1 << 20,
	}
	srv := httptest.NewServer(New(cfg, process.New(false, nil), nil))
	t.Cleanup(srv.Close)
	return srv
}

func upload(t *testing.T, srv *httptest.Server, filename, content string) *http.Response {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("ifcfile", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(srv.URL+"/api/upload", mw.FormDataContentType(), &body)
	require.NoError(t, err)
	return resp
}

func pollJob(t *testing.T, srv *httptest.Server, id string) statusResponse {
	t.Helper()
	var status statusResponse
	require.Eventually(t, func() bool {
		resp, err := http.Get(srv.URL + "/api/jobs/" + id)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return false
		}
		if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
			return false
		}
		return status.Job.State != JobRunning
	}, 5*time.Second, 20*time.Millisecond, "job never settled")
	return status
}

func TestUploadProcessAndDownload(t *testing.T) {
	srv := newTestServer(t)

	resp := upload(t, srv, "villa.ifc", sampleIFC)
	defer resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var up uploadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&up))
	require.NotEmpty(t, up.JobID)

	status := pollJob(t, srv, up.JobID)
	require.Equal(t, JobDone, status.Job.State)
	assert.True(t, status.Done)
	assert.Contains(t, status.Logs, "villa.ifc")
	require.NotEmpty(t, status.Job.ResultFile)

	dl, err := http.Get(srv.URL + "/api/results/" + status.Job.ResultFile)
	require.NoError(t, err)
	defer dl.Body.Close()
	require.Equal(t, http.StatusOK, dl.StatusCode)
	assert.Contains(t, dl.Header.Get("Content-Disposition"), "attachment")

	data, err := io.ReadAll(dl.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")), "expected an xlsx (zip) payload")
}

func TestUploadFailureIsReported(t *testing.T) {
	srv := newTestServer(t)

	resp := upload(t, srv, "broken.ifc", "this is not a STEP file")
	defer resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var up uploadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&up))

	status := pollJob(t, srv, up.JobID)
	assert.Equal(t, JobFailed, status.Job.State)
	assert.False(t, status.Done)
	assert.NotEmpty(t, status.Job.Error)
	assert.Contains(t, status.Logs, "error")
}

func TestUploadRejectsWrongExtension(t *testing.T) {
	srv := newTestServer(t)

	resp := upload(t, srv, "model.stl", "solid x")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadRequiresFile(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/upload", "application/x-www-form-urlencoded", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestJobStatusUnknown(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/jobs/no-such-job")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDownloadUnknownFile(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/results/absent.xlsx")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
