// internal/render/scripts.go
//
// Inline client-side behavior emitted at the bottom of every page.
//
// Context
// -------
// One script bundle covers the lightbox, the review carousel, the FAQ
// accordion, the appointment form submit, and the analytics beacons.  The
// bundle is assembled from constants plus a small JSON-encoded config
// object, so identical inputs produce identical bytes.  Beacon delivery
// is wrapped so a failure can never surface to the visitor or block the
// page.
//
// Notes
// -----
// • Values are injected via json.Marshal, never string concatenation, so
//   quoting is always JS-safe.
// • Oxford commas, two spaces after periods.
package render

import (
	"encoding/json"
	"strings"
)

// behaviorConfig is serialized into the page as `var VITRINE = {...}`.
type behaviorConfig struct {
	API        string `json:"api"`
	BusinessID int64  `json:"businessId"`
	Gallery    int    `json:"gallery"`
}

const behaviorBody = `
(function(){
"use strict";

// Best-effort analytics beacon.  Failures are swallowed entirely.
function track(type){
  try{
    var url=VITRINE.api+"/api/track";
    var body=JSON.stringify({businessId:VITRINE.businessId,eventType:type});
    if(navigator.sendBeacon){
      navigator.sendBeacon(url,new Blob([body],{type:"application/json"}));
    }else{
      fetch(url,{method:"POST",headers:{"Content-Type":"application/json"},
        body:body,keepalive:true}).catch(function(){});
    }
  }catch(e){}
}

// Page views are attributed server-side when the document is served, so
// no load beacon fires here; the client reports interactions only.

document.addEventListener("click",function(ev){
  var a=ev.target.closest&&ev.target.closest("a");
  if(!a)return;
  var href=a.getAttribute("href")||"";
  if(href.indexOf("tel:")===0)track("call_click");
  else if(a.dataset.track==="whatsapp")track("whatsapp_click");
  else if(a.dataset.track==="map")track("map_click");
});

// Image lightbox: wrap-around in both directions.
var lbIndex=0;
var lb=document.getElementById("lightbox");
var lbImg=document.getElementById("lightbox-img");
var shots=document.querySelectorAll("[data-shot]");

function showShot(i){
  if(VITRINE.gallery===0)return;
  lbIndex=((i%VITRINE.gallery)+VITRINE.gallery)%VITRINE.gallery;
  lbImg.src=shots[lbIndex].getAttribute("data-shot");
}

window.openLightbox=function(i){
  if(!lb)return;
  showShot(i);
  lb.classList.add("open");
  track("gallery_view");
};
window.closeLightbox=function(){if(lb)lb.classList.remove("open");};
window.nextShot=function(){showShot(lbIndex+1);};
window.prevShot=function(){showShot(lbIndex-1);};

// Review carousel: fixed-interval auto-advance.
var slides=document.querySelectorAll(".review-slide");
if(slides.length>1){
  var current=0;
  setInterval(function(){
    slides[current].classList.remove("active");
    current=(current+1)%slides.length;
    slides[current].classList.add("active");
  },5000);
}

// FAQ accordion: opening one entry closes the others.
var faqs=document.querySelectorAll(".faq-item");
faqs.forEach(function(item){
  item.querySelector(".faq-q").addEventListener("click",function(){
    var wasOpen=item.classList.contains("open");
    faqs.forEach(function(other){other.classList.remove("open");});
    if(!wasOpen)item.classList.add("open");
  });
});

// Appointment form: posts to the API, reports inline, never navigates.
var form=document.getElementById("appointment-form");
if(form){
  form.addEventListener("submit",function(ev){
    ev.preventDefault();
    var status=document.getElementById("appointment-status");
    var data={businessId:VITRINE.businessId};
    new FormData(form).forEach(function(v,k){data[k]=v;});
    fetch(VITRINE.api+"/api/appointments",{method:"POST",
      headers:{"Content-Type":"application/json"},body:JSON.stringify(data)})
      .then(function(){status.textContent="Request sent.";form.reset();})
      .catch(function(){status.textContent="Could not send, please call us.";});
  });
}
})();
`

// BehaviorScript returns the complete inline <script> element.
func BehaviorScript(apiBaseURL string, businessID int64, galleryLen int) string {
	cfg, err := json.Marshal(behaviorConfig{
		API:        strings.TrimRight(apiBaseURL, "/"),
		BusinessID: businessID,
		Gallery:    galleryLen,
	})
	if err != nil {
		cfg = []byte(`{"api":"","businessId":0,"gallery":0}`)
	}

	var sb strings.Builder
	sb.WriteString("<script>var VITRINE=")
	sb.Write(cfg)
	sb.WriteString(";")
	sb.WriteString(behaviorBody)
	sb.WriteString("</script>")
	return sb.String()
}
