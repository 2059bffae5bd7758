package registry

import "github.com/khabarcheck/khabarcheck/internal/domain"

// Curated seed lists. The merge order — Nepal, then international and
// fact-check, then known-unreliable — is load-bearing: fuzzy resolution is
// first-match over this sequence, so reordering changes observable results
// for ambiguous domains.

var nepalSources = []domain.SourceRecord{
	{Domain: "kathmandupost.com", Name: "The Kathmandu Post", ReliabilityScore: 0.85, SourceType: domain.SourceTypeMainstream},
	{Domain: "ekantipur.com", Name: "Kantipur", ReliabilityScore: 0.85, SourceType: domain.SourceTypeMainstream},
	{Domain: "onlinekhabar.com", Name: "Online Khabar", ReliabilityScore: 0.80, SourceType: domain.SourceTypeOnline},
	{Domain: "setopati.com", Name: "Setopati", ReliabilityScore: 0.80, SourceType: domain.SourceTypeOnline},
	{Domain: "ratopati.com", Name: "Ratopati", ReliabilityScore: 0.75, SourceType: domain.SourceTypeOnline},
	{Domain: "nepalnews.com", Name: "Nepal News", ReliabilityScore: 0.75, SourceType: domain.SourceTypeOnline},
	{Domain: "thehimalayantimes.com", Name: "The Himalayan Times", ReliabilityScore: 0.85, SourceType: domain.SourceTypeMainstream},
	{Domain: "myrepublica.nagariknetwork.com", Name: "Republica", ReliabilityScore: 0.85, SourceType: domain.SourceTypeMainstream},
	{Domain: "risingnepaldaily.com", Name: "The Rising Nepal", ReliabilityScore: 0.80, SourceType: domain.SourceTypeState},
	{Domain: "gabornepal.gov.np", Name: "Nepal Government", ReliabilityScore: 0.75, SourceType: domain.SourceTypeGovernment},
	{Domain: "nepalitimes.com", Name: "Nepali Times", ReliabilityScore: 0.85, SourceType: domain.SourceTypeMainstream},
	{Domain: "techlekh.com", Name: "TechLekh", ReliabilityScore: 0.70, SourceType: domain.SourceTypeTech},
	{Domain: "nagariknews.nagariknetwork.com", Name: "Nagarik News", ReliabilityScore: 0.80, SourceType: domain.SourceTypeMainstream},
	{Domain: "annapurnapost.com", Name: "Annapurna Post", ReliabilityScore: 0.80, SourceType: domain.SourceTypeMainstream},
	{Domain: "nayapatrikadaily.com", Name: "Naya Patrika", ReliabilityScore: 0.80, SourceType: domain.SourceTypeMainstream},
	{Domain: "himalpress.com", Name: "Himal Press", ReliabilityScore: 0.75, SourceType: domain.SourceTypeOnline},
	{Domain: "nepalsamaya.com", Name: "Nepal Samaya", ReliabilityScore: 0.75, SourceType: domain.SourceTypeOnline},
	{Domain: "dainiknepal.com", Name: "Dainik Nepal", ReliabilityScore: 0.70, SourceType: domain.SourceTypeOnline},
	{Domain: "bbc.com/nepali", Name: "BBC Nepali", ReliabilityScore: 0.90, SourceType: domain.SourceTypeInternational},
}

var internationalSources = []domain.SourceRecord{
	{Domain: "reuters.com", Name: "Reuters", ReliabilityScore: 0.95, SourceType: domain.SourceTypeWire},
	{Domain: "apnews.com", Name: "Associated Press", ReliabilityScore: 0.95, SourceType: domain.SourceTypeWire},
	{Domain: "afp.com", Name: "AFP", ReliabilityScore: 0.90, SourceType: domain.SourceTypeWire},
	{Domain: "bbc.com", Name: "BBC", ReliabilityScore: 0.90, SourceType: domain.SourceTypeMainstream},
	{Domain: "theguardian.com", Name: "The Guardian", ReliabilityScore: 0.85, SourceType: domain.SourceTypeMainstream},
	{Domain: "nytimes.com", Name: "New York Times", ReliabilityScore: 0.85, SourceType: domain.SourceTypeMainstream},
	{Domain: "washingtonpost.com", Name: "Washington Post", ReliabilityScore: 0.85, SourceType: domain.SourceTypeMainstream},
	{Domain: "aljazeera.com", Name: "Al Jazeera", ReliabilityScore: 0.80, SourceType: domain.SourceTypeMainstream},
	{Domain: "cnn.com", Name: "CNN", ReliabilityScore: 0.75, SourceType: domain.SourceTypeMainstream},
	{Domain: "ndtv.com", Name: "NDTV", ReliabilityScore: 0.75, SourceType: domain.SourceTypeMainstream},
	{Domain: "hindustantimes.com", Name: "Hindustan Times", ReliabilityScore: 0.75, SourceType: domain.SourceTypeMainstream},
	{Domain: "timesofindia.indiatimes.com", Name: "Times of India", ReliabilityScore: 0.70, SourceType: domain.SourceTypeMainstream},
	{Domain: "snopes.com", Name: "Snopes", ReliabilityScore: 0.95, SourceType: domain.SourceTypeFactCheck},
	{Domain: "factcheck.org", Name: "FactCheck.org", ReliabilityScore: 0.95, SourceType: domain.SourceTypeFactCheck},
	{Domain: "politifact.com", Name: "PolitiFact", ReliabilityScore: 0.90, SourceType: domain.SourceTypeFactCheck},
	{Domain: "boomlive.in", Name: "BOOM", ReliabilityScore: 0.90, SourceType: domain.SourceTypeFactCheck},
	{Domain: "altnews.in", Name: "Alt News", ReliabilityScore: 0.90, SourceType: domain.SourceTypeFactCheck},
	{Domain: "vishvasnews.com", Name: "Vishvas News", ReliabilityScore: 0.85, SourceType: domain.SourceTypeFactCheck},
	{Domain: "southasiacheck.org", Name: "South Asia Check", ReliabilityScore: 0.90, SourceType: domain.SourceTypeFactCheck},
}

var unreliableSources = []domain.SourceRecord{
	{Domain: "infowars.com", Name: "InfoWars", ReliabilityScore: 0.10, SourceType: domain.SourceTypeFake},
	{Domain: "naturalnews.com", Name: "Natural News", ReliabilityScore: 0.15, SourceType: domain.SourceTypeFake},
	{Domain: "beforeitsnews.com", Name: "Before It's News", ReliabilityScore: 0.10, SourceType: domain.SourceTypeFake},
	{Domain: "worldnewsdailyreport.com", Name: "World News Daily Report", ReliabilityScore: 0.05, SourceType: domain.SourceTypeSatire},
	{Domain: "theonion.com", Name: "The Onion", ReliabilityScore: 0.05, SourceType: domain.SourceTypeSatire},
	{Domain: "babylonbee.com", Name: "Babylon Bee", ReliabilityScore: 0.05, SourceType: domain.SourceTypeSatire},
	{Domain: "dailybuzzlive.com", Name: "Daily Buzz Live", ReliabilityScore: 0.15, SourceType: domain.SourceTypeFake},
	{Domain: "yournewswire.com", Name: "Your News Wire", ReliabilityScore: 0.10, SourceType: domain.SourceTypeFake},
	{Domain: "newspunch.com", Name: "News Punch", ReliabilityScore: 0.10, SourceType: domain.SourceTypeFake},
}

// suspiciousDomainPatterns mark unknown domains that imitate news outlets or
// live on free blog hosting. Matching any pattern lowers the neutral prior
// from 0.5 to 0.4.
var suspiciousDomainPatterns = []string{
	"breaking-news",
	"viral-news",
	"truth-revealed",
	"exposed-news",
	"real-truth",
	"insider-info",
	".blogspot.",
	".wordpress.com",
	"-news24",
	"-times24",
	"-today24",
}
