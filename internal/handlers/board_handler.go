package handlers

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/ArowuTest/bingo-caller/internal/models"
	"github.com/ArowuTest/bingo-caller/internal/services"
	"github.com/gin-gonic/gin"
)

// BoardTemplateName is the name the board page is registered under
const BoardTemplateName = "board"

// BoardHandler renders the caller page
type BoardHandler struct {
	drawService services.DrawService
	sessions    *SessionResolver
	authEnabled bool
}

// NewBoardHandler creates a new BoardHandler
func NewBoardHandler(drawService services.DrawService, sessions *SessionResolver, authEnabled bool) *BoardHandler {
	return &BoardHandler{
		drawService: drawService,
		sessions:    sessions,
		authEnabled: authEnabled,
	}
}

type boardPage struct {
	Columns        []models.BoardColumn
	CurrentDisplay string
	StatusText     string
	AuthEnabled    bool
}

// Show handles GET /
func (h *BoardHandler) Show(c *gin.Context) {
	game, err := h.drawService.GetGame(c.Request.Context(), h.sessions.Resolve(c))
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "Failed to load game")
		return
	}

	page := boardPage{
		Columns:        BuildBoard(game.DrawnNumbers),
		CurrentDisplay: "--",
		StatusText:     game.StatusText,
		AuthEnabled:    h.authEnabled,
	}
	if game.CurrentNumber != 0 {
		page.CurrentDisplay = strconv.Itoa(game.CurrentNumber)
	}
	c.HTML(http.StatusOK, BoardTemplateName, page)
}

// BuildBoard lays out 1..75 in lettered columns with drawn cells marked.
func BuildBoard(drawn []int) []models.BoardColumn {
	active := make(map[int]bool, len(drawn))
	for _, n := range drawn {
		active[n] = true
	}

	columns := make([]models.BoardColumn, 0, len(models.Letters))
	for i, letter := range models.Letters {
		col := models.BoardColumn{Letter: letter, Cells: make([]models.BoardCell, 0, models.BandSize)}
		for n := i*models.BandSize + 1; n <= (i+1)*models.BandSize; n++ {
			col.Cells = append(col.Cells, models.BoardCell{Number: n, Active: active[n]})
		}
		columns = append(columns, col)
	}
	return columns
}

// BoardTemplate returns the parsed board page template.
func BoardTemplate() *template.Template {
	return template.Must(template.New(BoardTemplateName).Parse(boardHTML))
}

const boardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Bingo Caller</title>
<style>
body { font-family: sans-serif; text-align: center; background: #f4f4f8; }
#current-number { font-size: 6rem; font-weight: bold; margin: 1rem 0 0; }
#current-number-text { font-size: 1.5rem; margin-bottom: 1rem; }
#board { display: inline-grid; grid-template-columns: repeat(5, 3.5rem); gap: .25rem; }
.column { display: flex; flex-direction: column; gap: .25rem; }
.column-letter { font-weight: bold; font-size: 1.5rem; }
.number-cell { padding: .5rem 0; border-radius: .25rem; background: #ddd; }
.number-cell.active { background: #e63946; color: #fff; }
.animate-pop { animation: pop .3s ease-out; }
@keyframes pop { 0% { transform: scale(.6); } 100% { transform: scale(1); } }
button { font-size: 1.1rem; margin: 0 .5rem 1rem; padding: .5rem 1.5rem; }
</style>
</head>
<body>
<div id="current-number">{{.CurrentDisplay}}</div>
<div id="current-number-text">{{.StatusText}}</div>
<div>
  <button id="draw-btn">Draw</button>
  <button id="reset-btn">Reset</button>
</div>
<div id="board">
{{range .Columns}}  <div class="column">
    <div class="column-letter">{{.Letter}}</div>
{{range .Cells}}    <div class="number-cell{{if .Active}} active{{end}}" id="cell-{{.Number}}">{{.Number}}</div>
{{end}}  </div>
{{end}}</div>
<script>
(function () {
  var authEnabled = {{.AuthEnabled}};
  var numberEl = document.getElementById('current-number');
  var textEl = document.getElementById('current-number-text');
  var drawBtn = document.getElementById('draw-btn');
  var resetBtn = document.getElementById('reset-btn');

  function headers() {
    var h = { 'Content-Type': 'application/json' };
    var token = sessionStorage.getItem('hostToken');
    if (token) { h['Authorization'] = 'Bearer ' + token; }
    return h;
  }

  function login() {
    var password = prompt('Host password');
    if (!password) { return Promise.resolve(false); }
    return fetch('/api/v1/auth/login', {
      method: 'POST', credentials: 'same-origin', headers: headers(),
      body: JSON.stringify({ password: password })
    }).then(function (res) {
      if (!res.ok) { alert('Login failed'); return false; }
      return res.json().then(function (body) {
        sessionStorage.setItem('hostToken', body.token);
        return true;
      });
    });
  }

  function post(path) {
    var send = function () {
      return fetch(path, { method: 'POST', credentials: 'same-origin', headers: headers() });
    };
    return send().then(function (res) {
      if (res.status === 401 && authEnabled) {
        sessionStorage.removeItem('hostToken');
        return login().then(function (ok) { return ok ? send() : res; });
      }
      return res;
    });
  }

  function reveal(result) {
    numberEl.textContent = result.number;
    numberEl.classList.remove('animate-pop');
    void numberEl.offsetWidth;
    numberEl.classList.add('animate-pop');
    var cell = document.getElementById('cell-' + result.number);
    if (cell) { cell.classList.add('active'); }
    textEl.textContent = result.statusText;
  }

  drawBtn.addEventListener('click', function () {
    drawBtn.disabled = true;
    post('/api/v1/game/draw').then(function (res) {
      return res.json().then(function (body) {
        if (res.status === 409) { alert(body.error); drawBtn.disabled = false; return; }
        if (!res.ok) { alert(body.error || 'Draw failed'); drawBtn.disabled = false; return; }
        var frames = body.shuffleFrames || [];
        var i = 0;
        var timer = setInterval(function () {
          if (i >= frames.length) {
            clearInterval(timer);
            reveal(body);
            drawBtn.disabled = false;
            return;
          }
          numberEl.textContent = frames[i++];
        }, body.shuffleIntervalMs || 50);
      });
    }).catch(function () { drawBtn.disabled = false; });
  });

  resetBtn.addEventListener('click', function () {
    if (!confirm('Are you sure you want to reset the game?')) { return; }
    post('/api/v1/game/reset').then(function (res) {
      if (!res.ok) { alert('Reset failed'); return; }
      numberEl.textContent = '--';
      textEl.textContent = 'Ready';
      document.querySelectorAll('.number-cell.active').forEach(function (cell) {
        cell.classList.remove('active');
      });
    });
  });
})();
</script>
</body>
</html>
`
