package render

import (
	"io"

	"github.com/vango-dev/vnp/pkg/seo"
	"github.com/vango-dev/vnp/pkg/vdom"
)

// ContentID is the id of the element whose content transitions replace.
const ContentID = "app"

// LeavingClass is toggled on the content element while a transition runs.
const LeavingClass = "fade-out"

// Document contains everything needed to render the shell page.
type Document struct {
	// Meta holds the title and meta tags
	Meta seo.Meta

	// Body is the initial content, may be nil
	Body *vdom.VNode

	// SocketPath is the websocket endpoint the client connects to
	SocketPath string

	// HashRouting makes the client keep the path in the URL fragment
	HashRouting bool

	// Lang is the language attribute for the html element
	// Defaults to "en" if not specified
	Lang string
}

// WriteDocument renders a complete HTML document to w.
func WriteDocument(w io.Writer, doc Document) error {
	lang := doc.Lang
	if lang == "" {
		lang = "en"
	}
	socket := doc.SocketPath
	if socket == "" {
		socket = "/ws"
	}

	head := []any{
		vdom.El("meta", vdom.Attribute("charset", "utf-8")),
		vdom.El("meta", vdom.Name("viewport"), vdom.Attribute("content", "width=device-width, initial-scale=1")),
	}
	if title := doc.Meta[seo.Title]; title != "" {
		head = append(head, vdom.El("title", title))
	}
	for _, key := range doc.Meta.Keys() {
		if key == seo.Title || doc.Meta[key] == "" {
			continue
		}
		head = append(head, vdom.El("meta", vdom.Name(key), vdom.Attribute("content", doc.Meta[key])))
	}
	head = append(head, vdom.El("style", vdom.Raw("."+LeavingClass+"{opacity:0;transition:opacity .2s}")))

	routing := "path"
	if doc.HashRouting {
		routing = "hash"
	}

	page := vdom.El("html", vdom.Attribute("lang", lang),
		vdom.El("head", head...),
		vdom.El("body",
			vdom.Main(vdom.ID(ContentID), doc.Body),
			vdom.El("script",
				vdom.Data("socket", socket),
				vdom.Data("routing", routing),
				vdom.Raw(clientScript),
			),
		),
	)

	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	if err := vdom.WriteHTML(w, page); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// clientScript is the thin client: it forwards navigations to the server
// and applies the frames it receives.
const clientScript = `(function(){
var s=document.currentScript,hash=s.dataset.routing==="hash",app=document.getElementById("` + ContentID + `");
var proto=location.protocol==="https:"?"wss://":"ws://";
var ws=new WebSocket(proto+location.host+s.dataset.socket);
function current(){if(hash){return location.hash.slice(1)||"/";}return location.pathname+location.search;}
function send(p){ws.send(JSON.stringify({type:"navigate",path:p}));}
ws.onopen=function(){send(current());};
ws.onmessage=function(e){var f=JSON.parse(e.data);
switch(f.type){
case "leaving":app.classList.toggle("` + LeavingClass + `",f.leaving);break;
case "swap":app.innerHTML=f.html;break;
case "meta":if(f.meta.title){document.title=f.meta.title;}
Object.keys(f.meta).forEach(function(k){if(k==="title"){return;}var m=document.querySelector('meta[name="'+k+'"]');
if(!m){m=document.createElement("meta");m.name=k;document.head.appendChild(m);}m.content=f.meta[k];});break;
case "location":history.replaceState(null,"",hash?"/#"+f.path:f.path);break;
case "scroll":window.scrollTo(0,0);break;}};
window.addEventListener(hash?"hashchange":"popstate",function(){send(current());});
document.addEventListener("click",function(e){var a=e.target.closest("a[data-link]");
if(!a||a.origin!==location.origin||a.target){return;}e.preventDefault();
var p=a.pathname+a.search;if(hash){history.pushState(null,"","/#"+p);}else{history.pushState(null,"",p);}send(p);});
})();`
