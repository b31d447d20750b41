package planner

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/wizqo2024/wizqo-sub002/internal/models"
)

type gearItem struct {
	name  string
	price string
}

// hobbyGear lists beginner gear; each item becomes an affiliate search link.
var hobbyGear = map[string][]gearItem{
	"guitar":      {{"beginner acoustic guitar", "$100-200"}, {"guitar tuner", "$10-20"}, {"guitar picks variety pack", "$5-10"}},
	"piano":       {{"61 key keyboard", "$100-200"}, {"piano sustain pedal", "$15-25"}, {"beginner piano book", "$10-20"}},
	"cooking":     {{"chef knife", "$30-60"}, {"cutting board", "$15-30"}, {"beginner cookbook", "$15-25"}},
	"baking":      {{"digital kitchen scale", "$15-25"}, {"mixing bowls set", "$20-35"}, {"baking sheet", "$10-20"}},
	"drawing":     {{"sketchbook", "$10-20"}, {"graphite pencil set", "$10-15"}, {"kneaded eraser", "$5"}},
	"painting":    {{"acrylic paint set", "$20-30"}, {"paint brush set", "$10-20"}, {"canvas panels", "$15-25"}},
	"photography": {{"camera strap", "$15-25"}, {"lens cleaning kit", "$10-15"}, {"travel tripod", "$25-50"}},
	"yoga":        {{"yoga mat", "$25-50"}, {"yoga blocks", "$15-20"}, {"yoga strap", "$8-12"}},
	"gardening":   {{"garden hand tool set", "$20-35"}, {"gardening gloves", "$10-15"}, {"seed starter kit", "$15-25"}},
	"knitting":    {{"knitting needles set", "$15-25"}, {"beginner yarn pack", "$15-25"}, {"stitch markers", "$5-10"}},
	"coding":      {{"beginner programming book", "$25-40"}, {"mechanical keyboard", "$50-80"}},
	"chess":       {{"tournament chess set", "$25-40"}, {"chess clock", "$25-40"}, {"chess tactics book", "$15-25"}},
}

// AffiliateURL builds an Amazon search link for query carrying tag.
func AffiliateURL(query, tag string) string {
	v := url.Values{}
	v.Set("k", query)
	if tag != "" {
		v.Set("tag", tag)
	}
	return "https://www.amazon.com/s?" + v.Encode()
}

func gearFor(hobby string) []gearItem {
	if items, ok := hobbyGear[strings.ToLower(strings.TrimSpace(hobby))]; ok {
		return items
	}
	return []gearItem{
		{hobby + " beginner kit", ""},
		{hobby + " book for beginners", ""},
	}
}

// affiliateProducts returns the gear suggestions for a plan day. Day one gets
// the whole kit; later days rotate through single items.
func affiliateProducts(hobby string, day int, tag string) []models.AffiliateLink {
	items := gearFor(hobby)
	if day > 1 {
		items = []gearItem{items[(day-2)%len(items)]}
	}

	links := make([]models.AffiliateLink, 0, len(items))
	for _, item := range items {
		links = append(links, models.AffiliateLink{
			Title: titleCase(item.name),
			Link:  AffiliateURL(item.name, tag),
			Price: item.price,
		})
	}
	return links
}

func freeResources(hobby string, day int) []models.FreeResource {
	topic := dayTemplates[(day-1)%len(dayTemplates)].focus
	return []models.FreeResource{
		{
			Title: fmt.Sprintf("YouTube: %s %s", hobby, topic),
			Link:  "https://www.youtube.com/results?" + url.Values{"search_query": {hobby + " " + topic}}.Encode(),
		},
		{
			Title: fmt.Sprintf("Reddit community for %s", hobby),
			Link:  "https://www.reddit.com/search/?" + url.Values{"q": {hobby + " beginners"}}.Encode(),
		},
	}
}
