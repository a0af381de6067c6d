package exercise

import "ilias-scraper/lib/telemetry"

var tracer = telemetry.Tracer("scrapers/ilias/exercise")
