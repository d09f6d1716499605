package sentiment

// valence holds mean human valence ratings in [-4, 4] for common review
// vocabulary.
var valence = map[string]float64{
	"love": 3.2, "loved": 2.9, "loves": 2.7, "loving": 2.9, "like": 1.5, "liked": 1.8, "likes": 1.8,
	"good": 1.9, "great": 3.1, "best": 3.2, "better": 1.9, "excellent": 2.7, "amazing": 2.8,
	"awesome": 3.1, "fantastic": 2.6, "wonderful": 2.7, "perfect": 2.7, "nice": 1.8, "cool": 1.3,
	"fun": 2.3, "funny": 1.9, "happy": 2.7, "glad": 2.0, "enjoy": 2.2, "enjoyed": 2.3, "enjoying": 2.4,
	"helpful": 1.8, "useful": 1.9, "easy": 1.9, "beautiful": 2.9, "pretty": 2.2, "smooth": 1.0,
	"recommend": 1.5, "recommended": 1.5, "thanks": 1.9, "thank": 1.5, "wow": 2.8, "super": 2.9,
	"brilliant": 2.8, "superb": 3.1, "favorite": 2.0, "favourite": 2.0, "worth": 0.9, "fast": 1.0,
	"reliable": 1.7, "satisfied": 1.8, "incredible": 3.4, "outstanding": 3.0, "lovely": 2.8,
	"impressive": 2.3, "interesting": 1.7, "addictive": 0.5, "clean": 1.7, "friendly": 2.2,
	"free": 2.3, "win": 2.8, "winning": 2.4, "success": 2.7, "successful": 2.8, "solid": 0.9,
	"safe": 1.9, "secure": 1.4, "stable": 1.2, "improved": 2.1, "improvement": 1.6, "fixed": 0.9,
	"ok": 1.2, "okay": 0.9, "fine": 0.8, "yes": 1.7, "support": 1.7, "helped": 1.6, "simple": 0.4,
	"hope": 1.9, "hopefully": 1.7, "convenient": 1.6, "accurate": 1.7, "exciting": 2.2,
	"bad": -2.5, "worse": -2.1, "worst": -3.1, "terrible": -2.1, "horrible": -2.5, "awful": -2.0,
	"poor": -2.1, "hate": -2.7, "hated": -3.2, "hates": -1.9, "annoying": -1.7, "annoyed": -1.6,
	"useless": -1.8, "waste": -1.8, "wasted": -2.2, "boring": -1.3, "stupid": -2.4, "disappointed": -1.9,
	"disappointing": -2.2, "disappointment": -2.3, "slow": -0.9, "problem": -1.7, "problems": -1.7,
	"issue": -0.6, "issues": -0.6, "bug": -1.0, "bugs": -1.0, "buggy": -1.6, "crash": -1.7,
	"crashes": -1.7, "crashed": -1.6, "crashing": -1.9, "broken": -2.1, "fail": -2.5, "failed": -2.3,
	"fails": -1.8, "failure": -2.3, "error": -1.7, "errors": -1.4, "wrong": -2.1, "sucks": -1.5,
	"suck": -1.9, "junk": -1.3, "garbage": -1.4, "trash": -1.6, "scam": -2.5, "fake": -2.1,
	"spam": -1.5, "ads": -0.2, "unfortunately": -1.4, "sad": -2.1, "angry": -2.3, "frustrating": -1.9,
	"frustrated": -2.4, "ridiculous": -1.7, "pathetic": -2.2, "difficult": -1.5, "hard": -0.4,
	"confusing": -1.3, "confused": -1.3, "lost": -1.3, "lose": -1.3, "losing": -1.6, "loss": -1.3,
	"uninstall": -0.8, "uninstalled": -1.0, "unable": -1.2, "cant": -0.6, "freeze": -0.5,
	"freezes": -0.6, "stuck": -1.0, "lag": -0.8, "laggy": -1.2, "expensive": -0.7, "pay": -0.3,
	"money": 0.1, "no": -1.2, "kill": -3.7, "dead": -3.3, "die": -2.9, "ugly": -2.3, "hurt": -2.4,
	"fear": -2.2, "worry": -1.9, "worried": -1.2, "sorry": -0.3, "complain": -1.5, "complaint": -1.2,
	"lame": -1.8, "weak": -1.9, "mess": -1.5, "messed": -1.4, "irritating": -2.0, "misleading": -1.7,
	"horrid": -2.5, "dislike": -1.6, "unhappy": -1.8, "delete": -0.7,
}

// boosters shift the valence of the following sentiment word.
const (
	boostIncr = 0.293
	boostDecr = -0.293
	capsIncr  = 0.733
	negScalar = -0.74
)

var boosters = map[string]float64{
	"absolutely": boostIncr, "amazingly": boostIncr, "awfully": boostIncr, "completely": boostIncr,
	"considerably": boostIncr, "decidedly": boostIncr, "deeply": boostIncr, "enormously": boostIncr,
	"entirely": boostIncr, "especially": boostIncr, "exceptionally": boostIncr, "extremely": boostIncr,
	"fully": boostIncr, "greatly": boostIncr, "highly": boostIncr, "hugely": boostIncr,
	"incredibly": boostIncr, "intensely": boostIncr, "majorly": boostIncr, "more": boostIncr,
	"most": boostIncr, "particularly": boostIncr, "purely": boostIncr, "quite": boostIncr,
	"really": boostIncr, "remarkably": boostIncr, "so": boostIncr, "substantially": boostIncr,
	"thoroughly": boostIncr, "totally": boostIncr, "tremendously": boostIncr, "uber": boostIncr,
	"unbelievably": boostIncr, "unusually": boostIncr, "utterly": boostIncr, "very": boostIncr,
	"almost": boostDecr, "barely": boostDecr, "hardly": boostDecr, "kind": boostDecr,
	"kinda": boostDecr, "less": boostDecr, "little": boostDecr, "marginally": boostDecr,
	"occasionally": boostDecr, "partly": boostDecr, "scarcely": boostDecr, "slightly": boostDecr,
	"somewhat": boostDecr, "sort": boostDecr, "sorta": boostDecr,
}

var negations = map[string]struct{}{
	"not": {}, "n't": {}, "no": {}, "never": {}, "none": {}, "nothing": {}, "nowhere": {},
	"neither": {}, "nor": {}, "cannot": {}, "dont": {}, "doesnt": {}, "didnt": {}, "isnt": {},
	"wasnt": {}, "werent": {}, "wont": {}, "wouldnt": {}, "shouldnt": {}, "couldnt": {},
	"without": {}, "aint": {}, "arent": {}, "hasnt": {}, "havent": {},
}

// assessment is a polarity/subjectivity pair for the subjectivity model.
type assessment struct {
	polarity     float64
	subjectivity float64
}

// opinions maps adjectives and opinion words to polarity in [-1, 1] and
// subjectivity in [0, 1].
var opinions = map[string]assessment{
	"good": {0.7, 0.6}, "great": {0.8, 0.75}, "best": {1.0, 0.3}, "better": {0.5, 0.5},
	"excellent": {1.0, 1.0}, "amazing": {0.6, 0.9}, "awesome": {1.0, 1.0}, "fantastic": {0.4, 0.9},
	"wonderful": {1.0, 1.0}, "perfect": {1.0, 1.0}, "nice": {0.6, 1.0}, "cool": {0.35, 0.65},
	"fun": {0.3, 0.2}, "funny": {0.25, 1.0}, "happy": {0.8, 1.0}, "glad": {0.5, 1.0},
	"helpful": {0.2, 0.4}, "useful": {0.3, 0.0}, "easy": {0.43, 0.83}, "beautiful": {0.85, 1.0},
	"pretty": {0.25, 1.0}, "smooth": {0.4, 0.7}, "brilliant": {0.9, 1.0}, "superb": {1.0, 1.0},
	"favorite": {0.5, 1.0}, "favourite": {0.5, 1.0}, "lovely": {0.5, 0.75}, "impressive": {1.0, 1.0},
	"interesting": {0.5, 0.5}, "addictive": {0.0, 0.5}, "friendly": {0.375, 0.5}, "simple": {0.0, 0.357},
	"fast": {0.2, 0.6}, "reliable": {0.0, 0.0}, "love": {0.5, 0.6}, "like": {0.0, 0.0},
	"incredible": {0.9, 0.9}, "outstanding": {0.5, 0.675}, "exciting": {0.3, 0.8}, "super": {0.33, 0.67},
	"bad": {-0.7, 0.667}, "worse": {-0.4, 0.6}, "worst": {-1.0, 1.0}, "terrible": {-1.0, 1.0},
	"horrible": {-1.0, 1.0}, "awful": {-1.0, 1.0}, "poor": {-0.4, 0.6}, "annoying": {-0.8, 0.9},
	"useless": {-0.5, 0.0}, "boring": {-1.0, 1.0}, "stupid": {-0.8, 1.0}, "disappointed": {-0.75, 0.75},
	"disappointing": {-0.6, 0.7}, "slow": {-0.3, 0.4}, "buggy": {-0.5, 0.6}, "broken": {-0.4, 0.4},
	"wrong": {-0.5, 0.9}, "sad": {-0.5, 1.0}, "angry": {-0.5, 1.0}, "frustrating": {-0.4, 0.7},
	"ridiculous": {-0.33, 1.0}, "pathetic": {-1.0, 1.0}, "difficult": {-0.5, 1.0}, "hard": {-0.3, 0.54},
	"confusing": {-0.3, 0.7}, "ugly": {-0.7, 1.0}, "lame": {-0.5, 0.75}, "weak": {-0.375, 0.625},
	"expensive": {-0.5, 0.7}, "laggy": {-0.4, 0.7}, "irritating": {-0.6, 0.9}, "misleading": {-0.5, 0.8},
	"hate": {-0.8, 0.9}, "unhappy": {-0.6, 1.0}, "fake": {-0.5, 1.0}, "free": {0.4, 0.8},
	"new": {0.14, 0.45}, "old": {0.1, 0.2}, "big": {0.0, 0.1}, "small": {-0.25, 0.4},
	"real": {0.2, 0.3}, "full": {0.35, 0.55}, "whole": {0.2, 0.4}, "clear": {0.1, 0.38},
	"stable": {0.0, 0.5}, "latest": {0.5, 0.9}, "many": {0.5, 0.5}, "much": {0.2, 0.2},
	"only": {0.0, 1.0}, "just": {0.0, 0.0}, "really": {0.2, 0.2}, "very": {0.2, 0.3},
}

// intensifiers multiply the subjectivity (and polarity) of the next opinion word.
var intensifiers = map[string]float64{
	"very": 1.3, "really": 1.3, "so": 1.3, "extremely": 1.5, "totally": 1.4, "absolutely": 1.5,
	"quite": 1.1, "too": 1.2, "super": 1.4, "incredibly": 1.5, "highly": 1.3, "pretty": 1.1,
}
