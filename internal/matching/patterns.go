package matching

import "regexp"

// Pattern tables compiled once at init. French association material is
// accent-unstable in provider output, so most alternations carry both
// accented and plain spellings.
var (
	placeholderPattern = regexp.MustCompile(`(?i)^(definition\s+de|element\s+[a-z0-9]+|notion\s+[a-z0-9]+|terme\s+[a-z0-9]+)\b`)

	badLeftPrefixPattern = regexp.MustCompile(`(?i)^\s*(on|il|elle|ils|elles|nous|vous|ce|cet|cette|cela|ceci|bien|toutes?|chaque)\b`)

	leftNoisyPhrasePattern = regexp.MustCompile(`(?i)^\s*(?:on\s+suppose|bien\s+entendu|toutes?\s+les|les\s+donn[eé]es?|les\s+informations?)\b`)

	rightNoisyStartPattern = regexp.MustCompile(`(?i)^\s*(?:est\s+le\s+suivant|c['’]?\s*est\s*[-–]?\s*[aà]\s*[-–]?\s*dire|est\s*[-–]?\s*[aà]\s*[-–]?\s*dire|sont\s+probablement|il\s+pourrait\s+falloir)\b`)

	rightNoisyTailPattern = regexp.MustCompile(`(?i)^\s*(?:est\s+le\s+suivant|sont\s+probablement|sont\s+s[ûu]rement|il\s+pourrait\s+falloir)\b`)

	// Dangling prepositions, conjunctions or punctuation at the end of a
	// definition mean the fragment was cut mid-sentence.
	rightBadEndPattern = regexp.MustCompile(`(?i)(?:\b(?:de|du|des|d['’]?|a|à|au|aux|pour|avec|sans|sur|sous|dans|en|par|vers|et|ou|que|qui|dont)\b|[:;,\-])\.?$`)

	leftVerbPattern = regexp.MustCompile(`(?i)\b(est|sont|sera|seront|doit|doivent|peut|peuvent|faut|suppose|considere|considerent|arrive|arrivent|perd|perdent|decrit|decrivent|décrit|décrivent|signifie|signifient|indique|indiquent|explique|expliquent|definit|definissent|définit|définissent|represente|representent|représente|représentent|caracterise|caracterisent|caractérise|caractérisent|envoie|envoient|renvoie|renvoient|limite|limitent|transmet|transmettent|recoit|reçoit|recoivent|reçoivent|declenche|déclenche|declenchent|déclenchent|active|activent)\b`)

	definitionPrefixPattern = regexp.MustCompile(`(?i)^\s*(?:(?:c['’]?\s*est|est)\s*[-–]?\s*[aà]\s*[-–]?\s*dire)\b[:\s,-]*`)

	predicatePrefixPattern = regexp.MustCompile(`(?i)^\s*(est|sont|decrit(?:e|ent)?|décrit(?:e|ent)?|signifie(?:nt)?|indique(?:nt)?|explique(?:nt)?|definit|définit|definissent|définissent|correspond(?:ent)?\s+a|permet(?:tent)?\s+de|sert(?:vent)?\s+a|consiste(?:nt)?\s+a|represente(?:nt)?|représente(?:nt)?|caracterise(?:nt)?|caractérise(?:nt)?|garantit|garantissent|envoie(?:nt)?|renvoie(?:nt)?|limite(?:nt)?|transmet(?:tent)?|recoi(?:t|vent)|reçoi(?:t|vent)|declenche(?:nt)?|déclenche(?:nt)?|active(?:nt)?)\b`)

	copulaArticlePattern = regexp.MustCompile(`(?i)^\s*(?:est|sont)\s+(?:une?\s+|le\s+|la\s+|les\s+|l'\s*|des\s+|du\s+|d'\s*)?`)

	sentencePairPattern = regexp.MustCompile(`(?i)^\s*(.+?)\s+\b(est|sont|decrit(?:e|ent)?|décrit(?:e|ent)?|signifie(?:nt)?|indique(?:nt)?|explique(?:nt)?|definit|définit|definissent|définissent|correspond(?:ent)?\s+a|permet(?:tent)?\s+de|sert(?:vent)?\s+a|consiste(?:nt)?\s+a|represente(?:nt)?|représente(?:nt)?|caracterise(?:nt)?|caractérise(?:nt)?|garantit|garantissent|envoie(?:nt)?|renvoie(?:nt)?|limite(?:nt)?|transmet(?:tent)?|recoi(?:t|vent)|reçoi(?:t|vent)|declenche(?:nt)?|déclenche(?:nt)?|active(?:nt)?)\b\s+(.+)$`)

	cestADirePairPattern = regexp.MustCompile(`(?i)^\s*(.+?)\s*,?\s*c['’]?\s*est\s*[-–]?\s*[aà]\s*[-–]?\s*dire\s+(.+)$`)

	leadingNounPhrasePattern = regexp.MustCompile(`(?i)^\s*(?:l['’]|le|la|les|un|une|des)\s+([A-Za-zÀ-ÖØ-öø-ÿ0-9'-]+(?:\s+(?:de|d['’]|du|des|[A-Za-zÀ-ÖØ-öø-ÿ0-9'-]+)){0,5})`)

	leftArticlePhrasePattern = regexp.MustCompile(`(?i)(?:^|\b)(?:toutes?\s+|tous\s+|chaque\s+|certaines?\s+|certains?\s+|ces\s+)?((?:l['’]|le|la|les|un|une|des|du)\s+[A-Za-zÀ-ÖØ-öø-ÿ0-9'-]+(?:\s+[A-Za-zÀ-ÖØ-öø-ÿ0-9'-]+){0,4})`)

	weakDefinitionPattern = regexp.MustCompile(`(?i)^(?:est|sont)\s+(?:le|la|les)\s+suivan(?:t|te|ts|tes)\b`)

	introNoisePattern = regexp.MustCompile(`(?i)^\s*(?:on\s+suppose(?:\s+que)?|on\s+considere(?:\s+que)?|bien\s+entendu|ainsi|alors|dans\s+ce\s+cas|en\s+pratique)\b[,:-]?\s*`)

	cestADirePattern = regexp.MustCompile(`(?i)\bc['’]?\s*est\s*[-–]?\s*[aà]\s*[-–]?\s*dire\b`)

	weakCertaintyPattern = regexp.MustCompile(`(?i)\b(probablement|s[ûu]rement)\b`)

	leadingArticlePattern = regexp.MustCompile(`(?i)^(?:l['’]|d['’]|le|la|les|un|une|des|du|de|au|aux)\s*`)

	definitionCuePattern = regexp.MustCompile(`(?i)\b(est|sont|signifie|signifient|correspond|correspondent|definit|définit|definissent|définissent|explique|expliquent|indique|indiquent|represente|représente|representent|représentent|caracterise|caractérise|caracterisent|caractérisent|decrit|décrit|decrivent|décrivent|permet|permettent|sert|servent|garantit|garantissent|c['’]?\s*est\s*[-–]?\s*[aà]\s*[-–]?\s*dire)\b`)

	tokenPattern = regexp.MustCompile(`[A-Za-zÀ-ÖØ-öø-ÿ0-9'-]+`)

	acronymPattern = regexp.MustCompile(`^[A-Z0-9]{2,10}$`)

	relativeClausePattern = regexp.MustCompile(`(?i)\b(?:qui|que|qu['’]|dont)\b`)

	leftClauseSplitPattern = regexp.MustCompile(`(?i)\s*(?:,|;|qu[‘’]|\bqui\b|\bque\b|\bdont\b)\s*`)

	leftDeterminerPrefixPattern = regexp.MustCompile(`(?i)^\s*(?:toutes?\s+|tous\s+|chaque\s+|certaines?\s+|certains?\s+|ces\s+)`)

	leftDanglingTailPattern = regexp.MustCompile(`(?i)\s+(?:de|du|des|d[‘’]?|pour|avec|sans|dans|sur|en|par|vers|et|ou)$`)

	estLeSuivantPrefixPattern = regexp.MustCompile(`(?i)^\s*est\s+le\s+suivant\s*,?\s*`)

	queLeadPattern = regexp.MustCompile(`(?i)^\s*que\s+`)

	semicolonPattern = regexp.MustCompile(`\s*;\s*`)

	pairFragmentSplitPattern = regexp.MustCompile(`\s*(?:\|\||;;|;|\n)+\s*`)
)

// rightMinWords is the floor on definition length in words.
const rightMinWords = 5

var stopwords = map[string]struct{}{
	"comment": {}, "pourquoi": {}, "quelle": {}, "quelles": {}, "quoi": {},
	"ou": {}, "quand": {}, "combien": {}, "liste": {}, "definition": {},
	"question": {}, "reponse": {}, "associez": {}, "associer": {},
}

var leftBadStartTokens = map[string]struct{}{
	"disponible": {}, "probablement": {}, "surement": {}, "sûrement": {},
	"suivant": {}, "suivante": {}, "suivants": {}, "suivantes": {},
	"quelques": {}, "plusieurs": {}, "exemple": {}, "exemples": {},
	"cas": {}, "maintenant": {},
}

var labelBannedTokens = map[string]struct{}{
	"est": {}, "sont": {},
	"decrit": {}, "decrivent": {}, "décrit": {}, "décrivent": {},
	"signifie": {}, "signifient": {},
	"indique": {}, "indiquent": {},
	"explique": {}, "expliquent": {},
	"definit": {}, "definissent": {}, "définit": {}, "définissent": {},
	"represente": {}, "representent": {}, "représente": {}, "représentent": {},
	"caracterise": {}, "caracterisent": {}, "caractérise": {}, "caractérisent": {},
	"garantit": {}, "garantissent": {},
	"envoie": {}, "envoient": {}, "renvoie": {}, "renvoient": {},
	"limite": {}, "limitent": {},
	"transmet": {}, "transmettent": {},
	"recoit": {}, "reçoit": {}, "recoivent": {}, "reçoivent": {},
	"declenche": {}, "déclenche": {}, "declenchent": {}, "déclenchent": {},
	"active": {}, "activent": {},
	"probablement": {}, "surement": {}, "sûrement": {},
}

var genericTokenStopwords = map[string]struct{}{
	"le": {}, "la": {}, "les": {}, "un": {}, "une": {}, "des": {}, "du": {},
	"de": {}, "d": {}, "l": {}, "au": {}, "aux": {}, "on": {},
	"bien": {}, "entendu": {}, "ainsi": {}, "alors": {}, "donc": {},
	"tout": {}, "tous": {}, "toute": {}, "toutes": {}, "chaque": {},
	"certain": {}, "certaine": {}, "certains": {}, "certaines": {},
	"ce": {}, "cet": {}, "cette": {}, "ces": {},
	"est": {}, "sont": {}, "sera": {}, "seront": {},
	"peut": {}, "peuvent": {}, "doit": {}, "doivent": {}, "faut": {},
	"suppose": {}, "considere": {}, "considerent": {},
	"arrive": {}, "arrivent": {}, "perd": {}, "perdent": {},
	"envoie": {}, "envoient": {}, "renvoie": {}, "renvoient": {},
	"limite": {}, "limitent": {}, "transmet": {}, "transmettent": {},
	"recoit": {}, "reçoit": {}, "recoivent": {}, "reçoivent": {},
	"declenche": {}, "déclenche": {}, "declenchent": {}, "déclenchent": {},
	"active": {}, "activent": {},
	"avec": {}, "sans": {}, "dans": {}, "pour": {}, "par": {}, "vers": {},
	"entre": {}, "qu": {}, "quil": {}, "quils": {}, "vont": {},
	"mettre": {}, "place": {}, "quelques": {}, "plusieurs": {},
	"exemple": {}, "exemples": {}, "cas": {}, "maintenant": {},
	"chose": {}, "choses": {},
}

var genericSingleLabelTokens = map[string]struct{}{
	"lettre": {}, "lettres": {}, "message": {}, "messages": {},
	"donnee": {}, "donnees": {}, "donnée": {}, "données": {},
	"information": {}, "informations": {},
	"element": {}, "elements": {}, "élément": {}, "éléments": {},
	"notion": {}, "notions": {}, "concept": {}, "concepts": {},
	"paquet": {}, "paquets": {},
}

var leftForbiddenTokens = map[string]struct{}{
	"pas": {}, "si": {}, "meme": {}, "même": {}, "cela": {}, "ceci": {},
	"ainsi": {}, "alors": {}, "debut": {}, "début": {}, "cote": {}, "côté": {},
	"bout": {}, "temps": {}, "faut": {}, "font": {}, "fait": {}, "faire": {},
	"vont": {}, "va": {}, "arrive": {}, "arriver": {}, "arrivent": {},
	"mettre": {}, "met": {}, "mettent": {}, "quelques": {}, "plusieurs": {},
	"exemple": {}, "exemples": {}, "cas": {}, "maintenant": {},
}

func inSet(set map[string]struct{}, value string) bool {
	_, ok := set[value]
	return ok
}
