// Package site serves the built-in prediction page.
package site

import (
	"context"
	"net/http"
)

// Register attaches the prediction page to mux. The page at / renders the
// passenger form and posts to /predict from the browser.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("/", handleRoot)
}

// handleRoot serves the form page. The root pattern also catches every
// unmatched path, which gets a plain 404 instead of the page.
func handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

const indexHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8">
    <title>Lifeboat - Titanic Survival Predictor</title>
    <style>
      body { font-family: sans-serif; max-width: 32rem; margin: 2rem auto; padding: 0 1rem; }
      label { display: block; margin-top: 0.75rem; }
      input, select { width: 100%; padding: 0.4rem; margin-top: 0.25rem; box-sizing: border-box; }
      button { margin-top: 1.25rem; padding: 0.6rem 1.5rem; }
      #result { margin-top: 1.5rem; padding: 1rem; display: none; }
      #result.survived { background: #e6f4ea; }
      #result.lost { background: #fdecea; }
      #result.error { background: #fff4e5; }
    </style>
  </head>
  <body>
    <h1>Titanic Survival Predictor</h1>
    <form id="predict-form">
      <label>Ticket class
        <select name="pclass">
          <option value="1" selected>First</option>
          <option value="2">Second</option>
          <option value="3">Third</option>
        </select>
      </label>
      <label>Sex
        <select name="sex">
          <option value="0" selected>Male</option>
          <option value="1">Female</option>
        </select>
      </label>
      <label>Age
        <input name="age" type="number" step="any" min="0" max="120" value="30">
      </label>
      <label>Siblings and spouses aboard
        <input name="sibsp" type="number" min="0" max="10" value="0">
      </label>
      <label>Parents and children aboard
        <input name="parch" type="number" min="0" max="10" value="0">
      </label>
      <label>Fare
        <input name="fare" type="number" step="any" min="0" max="1000" value="50.0">
      </label>
      <label>Embarkation port
        <select name="embarked">
          <option value="0" selected>Southampton</option>
          <option value="1">Cherbourg</option>
          <option value="2">Queenstown</option>
        </select>
      </label>
      <button type="submit">Predict</button>
    </form>
    <div id="result"></div>
    <script>
      const form = document.getElementById('predict-form');
      const result = document.getElementById('result');
      form.addEventListener('submit', async (e) => {
        e.preventDefault();
        const body = Object.fromEntries(new FormData(form));
        try {
          const resp = await fetch('/predict', {
            method: 'POST',
            headers: { 'Content-Type': 'application/json' },
            body: JSON.stringify(body),
          });
          const data = await resp.json();
          result.style.display = 'block';
          if (!resp.ok) {
            result.className = 'error';
            result.textContent = data.message;
            return;
          }
          result.className = data.survived ? 'survived' : 'lost';
          const pct = (data.confidence * 100).toFixed(1);
          result.textContent = data.label + ' (confidence ' + pct + '%)';
        } catch (err) {
          result.style.display = 'block';
          result.className = 'error';
          result.textContent = 'Request failed: ' + err;
        }
      });
    </script>
  </body>
</html>`
