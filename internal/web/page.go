package web

import (
	"html/template"
	"net/http"

	"clipcatch/internal/model"
	"clipcatch/internal/util/format"
)

type pageFile struct {
	Name string
	Size string
}

type pageData struct {
	Downloads []pageFile
	Trimmed   []pageFile
}

// index renders the single page with the current directory contents. All
// interaction after the first render goes through the /api endpoints.
func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	downloads, err := h.lib.Downloads()
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	trimmed, err := h.lib.Trimmed()
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	data := pageData{
		Downloads: toPageFiles(downloads),
		Trimmed:   toPageFiles(trimmed),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, data); err != nil {
		h.logger.Error("render page", "error", err)
	}
}

func toPageFiles(entries []model.LibraryEntry) []pageFile {
	out := make([]pageFile, 0, len(entries))
	for _, e := range entries {
		out = append(out, pageFile{Name: e.Name, Size: format.HumanizeBytes(e.Bytes)})
	}
	return out
}

var pageTmpl = template.Must(template.New("index").Parse(pageHTML))

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>ClipCatch</title>
<style>
body { font-family: sans-serif; max-width: 46rem; margin: 2rem auto; padding: 0 1rem; color: #222; }
h1 { font-size: 1.6rem; }
fieldset { border: 1px solid #ccc; border-radius: 6px; margin-bottom: 1.5rem; padding: 1rem; }
legend { font-weight: bold; }
input[type=text], input[type=url] { width: 100%; box-sizing: border-box; padding: .4rem; }
input[type=number] { width: 7rem; padding: .4rem; }
button { padding: .45rem 1rem; margin-top: .6rem; cursor: pointer; }
progress { width: 100%; height: 1rem; margin-top: .5rem; }
.error { color: #b00020; white-space: pre-wrap; }
.ok { color: #1a7f37; }
ul.files { list-style: none; padding-left: 0; }
ul.files li { padding: .15rem 0; }
.muted { color: #777; font-size: .85rem; }
</style>
</head>
<body>
<h1>&#127909; ClipCatch</h1>

<fieldset>
<legend>Download</legend>
<label for="url">Video URL</label>
<input type="url" id="url" placeholder="https://www.youtube.com/watch?v=...">
<label for="quality">Video quality</label>
<select id="quality">
<option value="best" selected>Best Available</option>
<option value="highest">Highest Resolution</option>
<option value="lowest">Lowest Resolution</option>
</select>
<br>
<button id="download-btn">Download Video</button>
<progress id="dl-progress" max="100" value="0" hidden></progress>
<div id="dl-status"></div>
</fieldset>

<fieldset>
<legend>Trimming settings</legend>
<label for="source">Select video to trim</label>
<select id="source">
{{range .Downloads}}<option value="{{.Name}}">{{.Name}} ({{.Size}})</option>
{{end}}</select>
{{if not .Downloads}}<p class="muted">No videos downloaded yet. Download a video first.</p>{{end}}
<br>
<label for="start">Start (minutes)</label>
<input type="number" id="start" min="0" step="1" value="0">
<label for="end">End (minutes)</label>
<input type="number" id="end" min="0" step="1" value="0">
<br>
<button id="trim-btn">Trim Video</button>
<progress id="trim-progress" max="100" value="0" hidden></progress>
<div id="trim-status"></div>
</fieldset>

<fieldset>
<legend>Trimmed clips</legend>
<ul class="files">
{{range .Trimmed}}<li><a href="/files/trimmed/{{.Name}}">{{.Name}}</a> <span class="muted">{{.Size}}</span></li>
{{end}}</ul>
{{if not .Trimmed}}<p class="muted">Nothing trimmed yet.</p>{{end}}
</fieldset>

<script>
function newJobID() {
  return (crypto.randomUUID ? crypto.randomUUID() : String(Date.now()) + Math.random().toString(16).slice(2));
}

function pollJob(id, bar) {
  return setInterval(async () => {
    try {
      const res = await fetch('/api/jobs/' + id);
      if (!res.ok) return;
      const snap = await res.json();
      if (snap.percent >= 0) {
        bar.value = snap.percent;
        bar.removeAttribute('hidden');
      } else {
        // Total size unknown: indeterminate bar.
        bar.removeAttribute('value');
        bar.removeAttribute('hidden');
      }
    } catch (e) { /* keep polling */ }
  }, 500);
}

async function runJob(endpoint, body, bar, statusEl, okText) {
  const jobID = newJobID();
  body.job_id = jobID;
  statusEl.textContent = 'Working...';
  statusEl.className = '';
  bar.value = 0;
  bar.removeAttribute('hidden');
  const timer = pollJob(jobID, bar);
  try {
    const res = await fetch(endpoint, {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify(body),
    });
    const data = await res.json();
    if (!res.ok) {
      statusEl.textContent = data.error || 'request failed';
      statusEl.className = 'error';
      return null;
    }
    statusEl.textContent = okText + ' ' + data.name + ' (' + data.human_size + ')';
    statusEl.className = 'ok';
    return data;
  } catch (e) {
    statusEl.textContent = String(e);
    statusEl.className = 'error';
    return null;
  } finally {
    clearInterval(timer);
    bar.setAttribute('hidden', '');
  }
}

document.getElementById('download-btn').addEventListener('click', async () => {
  const data = await runJob('/api/download', {
    url: document.getElementById('url').value,
    quality: document.getElementById('quality').value,
  }, document.getElementById('dl-progress'), document.getElementById('dl-status'), 'Video downloaded successfully:');
  if (data) {
    const a = document.createElement('a');
    a.href = '/files/downloads/' + encodeURIComponent(data.name);
    a.click();
    setTimeout(() => location.reload(), 1500);
  }
});

document.getElementById('trim-btn').addEventListener('click', async () => {
  const source = document.getElementById('source').value;
  const data = await runJob('/api/trim', {
    file: source,
    start_min: parseFloat(document.getElementById('start').value || '0'),
    end_min: parseFloat(document.getElementById('end').value || '0'),
  }, document.getElementById('trim-progress'), document.getElementById('trim-status'), 'Video trimmed successfully:');
  if (data) {
    const a = document.createElement('a');
    a.href = '/files/trimmed/' + encodeURIComponent(data.name);
    a.click();
    setTimeout(() => location.reload(), 1500);
  }
});

// The end-time control's upper bound and default both follow the selected
// source file's duration.
async function syncDuration() {
  const sel = document.getElementById('source');
  if (!sel.value) return;
  try {
    const res = await fetch('/api/files/' + encodeURIComponent(sel.value) + '/duration');
    if (!res.ok) return;
    const data = await res.json();
    const mins = data.duration_sec / 60;
    const end = document.getElementById('end');
    end.max = mins;
    end.value = mins.toFixed(2);
  } catch (e) { /* leave inputs as-is */ }
}
document.getElementById('source').addEventListener('change', syncDuration);
syncDuration();
</script>
</body>
</html>
`
