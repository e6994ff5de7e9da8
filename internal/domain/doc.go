// Package domain models NOAA Storm Events database records and the
// summaries derived from them.
//
// # Data Source
//
// Records come from the NOAA National Climatic Data Center Storm Events
// database export, a single large CSV (usually distributed bzip2-compressed)
// with one row per reported event occurrence from 1950 onward. Early years
// cover tornadoes only; later years add hundreds of event types with
// inconsistent spellings ("TSTM WIND", "THUNDERSTORM WIND", "Thunderstorm
// Winds" all appear). The export is denormalized: geography, timing, harm
// counts, and damage estimates sit on every row.
//
// # Storm Events Conventions
//
// Geography:
//
//	STATE__     numeric state identifier, written float-style ("48.00").
//	STATE       two-letter state/territory abbreviation.
//	COUNTY      numeric county identifier, unique only within a state.
//	COUNTYNAME  county or zone name, free text.
//
//	The raw file contains distinct STATE__ values that map to the same
//	abbreviation. The canonical state table keeps the numerically lowest
//	id per name; known-bad ids can additionally be excluded by
//	configuration.
//
// Timing:
//
//	BGN_DATE    "M/D/YYYY H:MM:SS" or bare "M/D/YYYY". The clock portion is
//	            always zero; the real begin time lives in BGN_TIME. Dates
//	            before the 1990s are known to be partial or ambiguous in
//	            the source. Unparseable dates are carried as a zero time
//	            and never block aggregation; no in-scope summary reads them.
//
// Harm counts:
//
//	FATALITIES, INJURIES  non-negative counts, written float-style ("0.00").
//
// Damage encoding:
//
//	PROPDMG/CROPDMG       damage estimate mantissa, e.g. 2.5.
//	PROPDMGEXP/CROPDMGEXP order-of-magnitude code: "" = ×1, "K" = ×1e3,
//	                      "M" = ×1e6, "B" = ×1e9. Codes are compared
//	                      case-insensitively because the file mixes "k"/"K"
//	                      and "m"/"M". The file also contains stray codes
//	                      ("+", "?", "0", "h", ...); those rows keep a
//	                      scale factor of 1 and are reported as data-quality
//	                      findings rather than failing the run. Bad numeric
//	                      identifiers, by contrast, fail the whole run.
//
// Event types:
//
//	EVTYPE  free-text category label. Normalization is limited to trimming
//	        and title-casing, so two spellings differing only by case merge
//	        into one group while genuinely different spellings of the same
//	        phenomenon stay distinct. That mirrors the source data and is
//	        intentional; collapsing near-duplicates would silently change
//	        every published ranking.
package domain
