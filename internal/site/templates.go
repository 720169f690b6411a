package site

// Built-in layouts, used when the layouts directory does not override them.
// Each is a Go html/template.

// mainLayout wraps every page.
const mainLayout = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} | {{.SiteTitle}}</title>
  {{if .Description}}<meta name="description" content="{{.Description}}">{{end}}
  <link rel="stylesheet" href="/static/inkpress.css">
  {{range .Styles}}<link rel="stylesheet" href="{{.}}">
  {{end}}
</head>
<body>
  <nav>
    {{if .ShowHome}}<a class="home" href="/">{{.SiteTitle}}</a>{{end}}
    <button class="more" data-target="menu" data-content="page">More</button>
    <ul class="menu">
      <li><a href="/">Posts</a></li>
      <li><a href="/#experiments">Experiments</a></li>
    </ul>
  </nav>
  <div class="page">
    {{.Content}}
  </div>
  <script src="/static/inkpress.js"></script>
  {{range .Scripts}}<script src="{{.}}"></script>
  {{end}}
</body>
</html>`

// homeLayout lists posts and experiments.
const homeLayout = `<section class="posts">
  <h1>Posts</h1>
  <ul>
  {{range .Posts}}
    <li>
      <a href="/posts/{{.Slug}}.html">{{.Title}}</a>
      {{if .Date}}<time>{{.Date}}</time>{{end}}
      {{if .Description}}<p>{{.Description}}</p>{{end}}
    </li>
  {{end}}
  </ul>
</section>
{{if .Experiments}}
<section class="experiments" id="experiments">
  <h1>Experiments</h1>
  <ul>
  {{range .Experiments}}
    <li><a href="/experiments/{{.Slug}}/">{{.Title}}</a> <p>{{.Description}}</p></li>
  {{end}}
  </ul>
</section>
{{end}}`

// postLayout renders a single post with related and next links.
const postLayout = `<article class="post">
  <header>
    <h1>{{.Title}}</h1>
    {{if .Date}}<time>{{.Date}}</time>{{end}}
  </header>
  {{.Content}}
  {{if .NextPost}}
  <p class="next">Next: <a href="/posts/{{.NextPost.Slug}}.html">{{.NextPost.Title}}</a></p>
  {{end}}
</article>
<aside class="related">
  <ul>
  {{range .Posts}}
    <li{{if eq .Slug $.Slug}} class="current"{{end}}><a href="/posts/{{.Slug}}.html">{{.Title}}</a></li>
  {{end}}
  </ul>
</aside>`

// experimentLayout renders an experiment's markup followed by its notes.
const experimentLayout = `<article class="experiment">
  <h1>{{.Title}}</h1>
  <p class="description">{{.Description}}</p>
  {{.ExperimentMarkup}}
  <section class="notes">
    {{.Notes}}
  </section>
</article>
<aside class="experiments">
  <ul>
  {{range .Experiments}}
    <li{{if eq .Slug $.Slug}} class="current"{{end}}><a href="/experiments/{{.Slug}}/">{{.Title}}</a></li>
  {{end}}
  </ul>
</aside>`

// cssContent is the base stylesheet written to static/inkpress.css.
const cssContent = `:root {
  --fg: #1f2328;
  --muted: #656d76;
  --accent: #0969da;
}
body { margin: 0; font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; color: var(--fg); }
nav { display: flex; align-items: center; gap: 1rem; padding: 1rem 2rem; }
nav .more { display: none; }
nav .menu { display: flex; gap: 1rem; list-style: none; margin: 0; padding: 0; }
.page { max-width: 46rem; margin: 0 auto; padding: 0 2rem 4rem; transition: opacity 0.24s; }
.page.hide { display: none; }
time, .description { color: var(--muted); }
#lyrics { height: 60vh; overflow-y: auto; }
#lyrics li { list-style: none; padding: 0.4rem 0; color: var(--muted); cursor: pointer; }
#lyrics li.active { color: var(--fg); font-weight: 600; }
@media (max-width: 640px) {
  nav .more { display: inline-block; margin-left: auto; }
  nav .menu { display: none; flex-direction: column; }
  nav .menu.active { display: flex; }
}
`

// clientScript forwards page events to the serve session and applies the
// commands it sends back. Pages opened from disk fall back to doing nothing.
const clientScript = `(function() {
  "use strict";
  if (!("WebSocket" in window) || location.protocol === "file:") return;

  var scheme = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(scheme + location.host + "/ws");

  function send(msg) {
    if (ws.readyState === WebSocket.OPEN) ws.send(JSON.stringify(msg));
  }

  var menuBtn = document.querySelector("nav>.more");
  var lyrics = document.querySelector("#lyrics>ul");
  var container = document.querySelector("#lyrics");
  var player = document.querySelector(".audio-player");

  ws.addEventListener("open", function() {
    if (menuBtn) {
      menuBtn.addEventListener("click", function() { send({type: "nav"}); });
    }
    if (lyrics && player) {
      var lines = [];
      Array.prototype.forEach.call(lyrics.children, function(li, i) {
        lines.push({time: parseInt(li.dataset.time, 10), top: li.getBoundingClientRect().top});
        li.addEventListener("click", function() { send({type: "select", index: i}); });
      });
      send({type: "init", lines: lines, anchor: lyrics.getBoundingClientRect().top});
      player.addEventListener("timeupdate", function() {
        send({type: "timeupdate", seconds: player.currentTime});
      });
    }
  });

  ws.addEventListener("message", function(ev) {
    var msg = JSON.parse(ev.data);
    switch (msg.type) {
    case "activate":
      lyrics.children[msg.index].classList.add("active");
      break;
    case "deactivate":
      lyrics.children[msg.index].classList.remove("active");
      break;
    case "scroll":
      container.scrollBy({top: msg.delta, behavior: "smooth"});
      break;
    case "seek":
      player.currentTime = msg.seconds;
      break;
    case "label":
      menuBtn.innerText = msg.text;
      break;
    case "toggle":
      var sel = msg.target === "menu" ? menuBtn.dataset.target : menuBtn.dataset.content;
      document.querySelector("." + sel).classList.toggle(msg.class);
      break;
    case "error":
      console.warn("inkpress:", msg.message);
      break;
    }
  });
})();
`
