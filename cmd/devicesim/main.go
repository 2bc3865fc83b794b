package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// devicesim serves the Stretch/Smile XML endpoints with synthetic data so
// the collector can be exercised without hardware.

var (
	hostPort   = flag.String("addr", "127.0.0.1:8000", "listen address")
	appliances = flag.Int("appliances", 8, "number of simulated appliances")
	username   = flag.String("username", "stretch", "basic auth username")
	password   = flag.String("password", "", "basic auth password (empty disables auth)")
)

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

type simAppliance struct {
	ID       string
	MeterID  string
	ModuleID string
	Name     string
}

func main() {
	flag.Parse()

	sims := make([]simAppliance, *appliances)
	for i := range sims {
		sims[i] = simAppliance{
			ID:       uuid.NewString(),
			MeterID:  uuid.NewString(),
			ModuleID: uuid.NewString(),
			Name:     fmt.Sprintf("Appliance %d", i+1),
		}
	}
	fmt.Printf("simulating %d appliances on %s\n", len(sims), *hostPort)

	mux := http.NewServeMux()
	mux.HandleFunc("/core/appliances", authed(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		fmt.Fprint(w, "<appliances>")
		for _, a := range sims {
			fmt.Fprintf(w, `<appliance id=%q><name>%s</name><services>`, a.ID, a.Name)
			fmt.Fprintf(w, `<electricity_point_meter id=%q/>`, a.MeterID)
			fmt.Fprint(w, "</services></appliance>")
		}
		fmt.Fprint(w, "</appliances>")
	}))
	mux.HandleFunc("/core/modules", authed(func(w http.ResponseWriter, r *http.Request) {
		logDate := time.Now().Format(time.RFC3339)
		w.Header().Set("Content-Type", "text/xml")
		fmt.Fprint(w, "<modules>")
		for _, a := range sims {
			watts := rnd.Float64() * 2000
			fmt.Fprintf(w, `<module id=%q><services><electricity_point_meter id=%q>`, a.ModuleID, a.MeterID)
			fmt.Fprintf(w, `<measurement log_date=%q directionality="consumed">%.2f</measurement>`, logDate, watts)
			fmt.Fprint(w, "</electricity_point_meter></services></module>")
		}
		fmt.Fprint(w, "</modules>")
	}))
	mux.HandleFunc("/core/domain_objects", authed(func(w http.ResponseWriter, r *http.Request) {
		logDate := time.Now().Format(time.RFC3339)
		w.Header().Set("Content-Type", "text/xml")
		fmt.Fprintf(w, `<domain_objects><location id=%q><name>Home</name><logs>`, uuid.NewString())
		writeCumulative(w, "electricity_consumed", "kWh", logDate, 12000+rnd.Float64()*10, 9000+rnd.Float64()*10)
		writeCumulative(w, "electricity_produced", "kWh", logDate, 3000+rnd.Float64()*10, 1500+rnd.Float64()*10)
		fmt.Fprint(w, `<cumulative_log><type>gas_consumed</type><unit>m3</unit><period>`)
		fmt.Fprintf(w, `<measurement log_date=%q>%.3f</measurement>`, logDate, 4000+rnd.Float64())
		fmt.Fprint(w, "</period></cumulative_log>")
		fmt.Fprint(w, "</logs></location></domain_objects>")
	}))

	log.Fatal(http.ListenAndServe(*hostPort, mux))
}

func writeCumulative(w http.ResponseWriter, logType, unit, logDate string, peak, offpeak float64) {
	fmt.Fprintf(w, "<cumulative_log><type>%s</type><unit>%s</unit><period>", logType, unit)
	fmt.Fprintf(w, `<measurement log_date=%q tariff="nl_peak">%.3f</measurement>`, logDate, peak)
	fmt.Fprintf(w, `<measurement log_date=%q tariff="nl_offpeak">%.3f</measurement>`, logDate, offpeak)
	fmt.Fprint(w, "</period></cumulative_log>")
}

func authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if *password != "" {
			user, pass, ok := r.BasicAuth()
			if !ok || user != *username || pass != *password {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
		}
		next(w, r)
	}
}
