package gtfs

import (
	"archive/zip"
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
)

const (
	agencyTxt = "agency_id,agency_name,agency_url,agency_timezone\n" +
		"parks,National Parks Transit,https://parks.example.com,America/Los_Angeles\n"
	routesTxt = "route_id,agency_id,route_short_name,route_long_name,route_type\n" +
		"R1,parks,1,Park Loop,3\n"
	tripsTxt = "route_id,service_id,trip_id\n" +
		"R1,WEEK,T1\n"
	stopTimesTxt = "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
		"T1,08:00:00,08:00:00,P1,1\n" +
		"T1,09:00:00,09:00:00,P2,2\n"
	calendarTxt = "service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date\n" +
		"WEEK,1,1,1,1,1,1,1,20250101,20351231\n"
)

const stationStopsTxt = "stop_id,stop_name,stop_lat,stop_lon,location_type,parent_station\n" +
	"S1,Disneyland,33.817595,-117.922008,1,\n" +
	"P1,Disneyland Platform A,33.8176,-117.9221,0,S1\n" +
	"S2,Joshua Tree,33.881866,-115.90065,1,\n" +
	"P2,Joshua Tree Platform A,33.8819,-115.9007,0,S2\n"

const plainStopsTxt = "stop_id,stop_name,stop_lat,stop_lon\n" +
	"P1,Bronx Zoo,40.852905,-73.872971\n" +
	"P2,Flatiron Building,40.741112,-73.989723\n"

// buildBundle zips a minimal GTFS static feed around the given stops.txt.
func buildBundle(t *testing.T, stops string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"agency.txt":     agencyTxt,
		"stops.txt":      stops,
		"routes.txt":     routesTxt,
		"trips.txt":      tripsTxt,
		"stop_times.txt": stopTimesTxt,
		"calendar.txt":   calendarTxt,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Failed to add %s to bundle: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close bundle: %v", err)
	}
	return buf.Bytes()
}

func setupGtfsServer(t *testing.T, bundle []byte) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/zip")
		w.Write(bundle)
	}))
	t.Cleanup(server.Close)
	return server
}
